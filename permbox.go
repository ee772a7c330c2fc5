// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// permbox implements a permission algebra for static checking of linear and
// affine ownership of heap values.
//
// The design follows the Mezzo type-system: program values are abstracted as
// points, the environment maps each point to the set of permissions currently
// held for it, and checking an expression transforms the environment by adding
// permissions for new values and subtracting permissions that expressions
// require. Duplicable permissions survive subtraction; exclusive and affine
// permissions are consumed. Control-flow joins keep exactly the permissions
// available on every incoming branch.
//
// Environments are persistent. Every operation returns a new environment and
// leaves its input intact, so a failed subtraction or a speculative check
// never corrupts the state it started from.
//
// Supported Features:
//
//   * Duplicable, exclusive and affine permissions with fixed-point fact
//     analysis over mutually-recursive data types
//   * Singleton types and strong (type-changing) updates to mutable fields
//   * Automatic unfolding of structural types into per-field points
//   * Unification and refinement of permissions held for a point
//   * Subtraction with flexible variable instantiation
//   * Control-flow joins by pointwise permission intersection
//
// Links:
//
// Mezzo (OCaml implementation): https://github.com/protz/mezzo
//
// The design and formalization of Mezzo (Balabonski, Pottier, Protzenko): https://doi.org/10.1145/2837022
package permbox
