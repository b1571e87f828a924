// This file is part of BeastBoard.
//
// BeastBoard is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// BeastBoard is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with BeastBoard.  If not, see <https://www.gnu.org/licenses/>.

// Package test contains helper functions to remove common boilerplate in
// test functions.
//
// The ExpectEquality() function compares like-typed variables for equality,
// failing the test if they do not match.
//
// ExpectSuccess() and ExpectFailure() test for a 'success' value suitable
// for the type of the argument. The Demand*() equivalents treat a failed
// expectation as fatal to the test.
//
// The CompareWriter type implements io.Writer and can be used to capture
// output for comparison with an expected string.
package test
