/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package clock samples system clocks through the CLOCK_GETTIME syscall.

A Sample holds a reading of CLOCK_REALTIME and CLOCK_MONOTONIC taken back to
back, both as floating seconds with nanosecond input precision.
Only differences between two monotonic readings are meaningful, its
absolute value depends on the kernel.
*/
package clock
