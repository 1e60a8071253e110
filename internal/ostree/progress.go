// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ostree

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
)

// The pull status stream redraws its progress line with carriage
// returns, so the scanner splits on both \r and \n.
var progressRe = regexp.MustCompile(`Receiving (?:objects|delta parts): (\d+)% \((\d+)/(\d+)`)

func newStatusScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Split(scanStatusLines)
	return scanner
}

func scanStatusLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	for i, b := range data {
		if b == '\n' || b == '\r' {
			return i + 1, data[:i], nil
		}
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}

// parseProgress extracts (fetched, requested, percent) from a pull
// status line, reporting whether the line carried progress at all
func parseProgress(line string) (fetched, requested, percent int, ok bool) {
	m := progressRe.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, 0, false
	}

	percent, _ = strconv.Atoi(m[1])
	fetched, _ = strconv.Atoi(m[2])
	requested, _ = strconv.Atoi(m[3])

	return fetched, requested, percent, true
}
