/*
Copyright 2024 The Tabflow Authors.

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

package window

import "fmt"

// TimeUnit is the unit a window duration is expressed in. All durations
// are normalized to milliseconds at construction time.
type TimeUnit int

const (
	UnitUnspecified TimeUnit = iota
	Milliseconds
	Seconds
	Minutes
	Hours
	Days
)

func (u TimeUnit) String() string {
	switch u {
	case Milliseconds:
		return "MILLISECONDS"
	case Seconds:
		return "SECONDS"
	case Minutes:
		return "MINUTES"
	case Hours:
		return "HOURS"
	case Days:
		return "DAYS"
	default:
		return "UNSPECIFIED"
	}
}

// ParseUnit resolves a textual unit name as used in configuration files
// and command-line flags.
func ParseUnit(s string) (TimeUnit, error) {
	switch s {
	case "ms", "milliseconds":
		return Milliseconds, nil
	case "s", "seconds":
		return Seconds, nil
	case "m", "minutes":
		return Minutes, nil
	case "h", "hours":
		return Hours, nil
	case "d", "days":
		return Days, nil
	default:
		return UnitUnspecified, fmt.Errorf("unknown time unit %q", s)
	}
}

// Millis converts an amount of this unit to milliseconds.
func (u TimeUnit) Millis(amount int64) int64 {
	switch u {
	case Milliseconds:
		return amount
	case Seconds:
		return amount * 1000
	case Minutes:
		return amount * 60 * 1000
	case Hours:
		return amount * 60 * 60 * 1000
	case Days:
		return amount * 24 * 60 * 60 * 1000
	default:
		return 0
	}
}
