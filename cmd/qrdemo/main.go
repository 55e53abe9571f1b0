/*
 * Copyright © 2020, G.Ralph Kuntz, MD.
 *
 * Licensed under the Apache License, Version 2.0(the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIC
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command qrdemo builds a QR symbol from a command-line argument, writes
// it as an SVG file, and opens it in the default browser.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/browser"

	"github.com/qrforge/qrcodec/qrcodegen"
)

func main() {
	eclFlag := flag.String("ecl", "M", "error correction level: L, M, Q, or H")
	flag.Parse()

	text := "https://example.com/"
	if flag.NArg() > 0 {
		text = flag.Arg(0)
	}

	ecl, err := parseECL(*eclFlag)
	if err != nil {
		log.Fatal(err)
	}

	symbol, err := qrcodegen.NewBuilder(text).WithECL(ecl).Build()
	if err != nil {
		log.Fatalf("building symbol: %v", err)
	}

	svg, err := symbol.ToSVGString(4, true)
	if err != nil {
		log.Fatalf("rendering svg: %v", err)
	}

	f, err := os.CreateTemp("", "qrdemo-*.svg")
	if err != nil {
		log.Fatalf("creating temp file: %v", err)
	}
	defer f.Close()

	if _, err := f.WriteString(svg); err != nil {
		log.Fatalf("writing svg: %v", err)
	}

	meta := symbol.Metadata()
	fmt.Printf("version %d, ecl %s, mask %d, side %d\n", meta.Version, meta.ECL, meta.Mask, symbol.Side())

	if err := browser.OpenFile(f.Name()); err != nil {
		log.Fatalf("opening browser: %v", err)
	}
}

func parseECL(s string) (qrcodegen.ECL, error) {
	switch s {
	case "L":
		return qrcodegen.Low, nil
	case "M":
		return qrcodegen.Medium, nil
	case "Q":
		return qrcodegen.Quartile, nil
	case "H":
		return qrcodegen.High, nil
	default:
		return 0, fmt.Errorf("unknown error correction level %q", s)
	}
}
