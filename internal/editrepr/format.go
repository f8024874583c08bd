// Copyright 2026 The tagfs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package editrepr

import (
	"bufio"
	"fmt"
	"io"
)

// Format writes blocks back out in the format Parse reads, with a delimiter
// line ahead of every block, including the first.
func Format(w io.Writer, blocks []Block) error {
	bw := bufio.NewWriter(w)

	for _, b := range blocks {
		if _, err := fmt.Fprintln(bw, delimiter); err != nil {
			return fmt.Errorf("editrepr: Format: %w", err)
		}
		if _, err := fmt.Fprintln(bw, b.Path); err != nil {
			return fmt.Errorf("editrepr: Format: %w", err)
		}
		for _, t := range b.Manual {
			if err := writeTagLine(bw, t); err != nil {
				return err
			}
		}
		if len(b.Auto) > 0 {
			if _, err := fmt.Fprintln(bw, autoMarker); err != nil {
				return fmt.Errorf("editrepr: Format: %w", err)
			}
			for _, t := range b.Auto {
				if err := writeTagLine(bw, t); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}

func writeTagLine(w io.Writer, t Tag) error {
	line := escape(t.Name)
	if t.Value != nil {
		line += "=" + escape(*t.Value)
	}
	_, err := fmt.Fprintln(w, line)
	if err != nil {
		return fmt.Errorf("editrepr: Format: %w", err)
	}
	return nil
}
