/*
   Copyright Mycophonic.

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

package dwop

import "errors"

// ErrUnaryOverrun indicates the unary quotient loop exceeded its safety cap,
// almost always meaning the bitstream is corrupt or not DWOP at all.
var ErrUnaryOverrun = errors.New("unary quotient exceeded safety cap")

// ErrRangeCollapse indicates the range-coder register rv degenerated to 0,
// which the codec's invariants say can never happen on valid input.
var ErrRangeCollapse = errors.New("range coder register collapsed to zero")
