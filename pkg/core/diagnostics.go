/*
Copyright 2025 David Arnold
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

package core

import "fmt"

// Warning is a non-fatal problem found while parsing or merging.
type Warning struct {
	Component string `json:"component"`
	Message   string `json:"message"`
}

func (w Warning) String() string {
	return w.Component + ": " + w.Message
}

// Diagnostics collects the warnings raised by a single operation.
type Diagnostics []Warning

// Addf records a warning for component.
func (d *Diagnostics) Addf(component, format string, args ...interface{}) {
	*d = append(*d, Warning{Component: component, Message: fmt.Sprintf(format, args...)})
}

// Append adds the warnings of another operation.
func (d *Diagnostics) Append(other Diagnostics) {
	*d = append(*d, other...)
}

// Empty reports whether no warnings were raised.
func (d Diagnostics) Empty() bool {
	return len(d) == 0
}
