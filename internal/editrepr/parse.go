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
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformed is wrapped into every error Parse returns for a line it
// could not make sense of.
var ErrMalformed = errors.New("editrepr: malformed input")

const delimiter = "--------"
const autoMarker = "--AUTO--"

// Parse reads the edit-representation text format (spec §6.5) and returns
// one Block per path. Blocks are separated by a line of eight hyphens; a
// leading delimiter before the first block is optional. Parse validates the
// whole input before returning, so a caller can safely treat a non-nil
// result as fit to feed to a destructive re-ingestion.
func Parse(r io.Reader) ([]Block, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var blocks []Block
	var cur *Block
	sawAuto := false

	flush := func() error {
		if cur == nil {
			return nil
		}
		if cur.Path == "" && len(cur.Manual) == 0 && len(cur.Auto) == 0 {
			cur = nil
			return nil
		}
		if cur.Path == "" {
			return fmt.Errorf("%w: block has tags but no path", ErrMalformed)
		}
		blocks = append(blocks, *cur)
		cur = nil
		return nil
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case line == delimiter:
			if err := flush(); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			cur = &Block{}
			sawAuto = false

		case strings.TrimSpace(line) == "":
			// blank lines ignored

		case strings.HasPrefix(line, "//"):
			// comment, ignored

		case line == autoMarker:
			if cur == nil || cur.Path == "" {
				return nil, fmt.Errorf("line %d: %w: %s outside a block", lineNo, ErrMalformed, autoMarker)
			}
			if sawAuto {
				return nil, fmt.Errorf("line %d: %w: duplicate %s in one block", lineNo, ErrMalformed, autoMarker)
			}
			sawAuto = true

		default:
			if cur == nil {
				cur = &Block{}
			}
			if cur.Path == "" {
				cur.Path = line
				continue
			}
			name, value, hasValue, ok := splitTagLine(line)
			if !ok {
				return nil, fmt.Errorf("line %d: %w: invalid tag line %q", lineNo, ErrMalformed, line)
			}
			tag := Tag{Name: name}
			if hasValue {
				v := value
				tag.Value = &v
			}
			if sawAuto {
				cur.Auto = append(cur.Auto, tag)
			} else {
				cur.Manual = append(cur.Manual, tag)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("editrepr: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return blocks, nil
}
