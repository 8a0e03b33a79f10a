// Package sysinfo reports facts about the primary display.
package sysinfo

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// BaselineDPI is the density at which one device-independent unit equals one pixel.
const BaselineDPI = 96.0

// Display describes the primary display in real pixels.
type Display struct {
	Width  int
	Height int
	Scale  float64 // pixels per device-independent unit; 0 is treated as 1
}

// SmallestWidthDp returns the shorter screen side in device-independent units,
// truncated toward zero.
func (d Display) SmallestWidthDp() int {
	scale := d.Scale
	if scale <= 0 {
		scale = 1
	}
	minDim := d.Width
	if d.Height < minDim {
		minDim = d.Height
	}
	return int(float64(minDim) / scale)
}

// Valid reports whether both dimensions are non-zero.
func (d Display) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

var (
	// resolutionRegex matches strings like "3456 x 2234", "2880x1864Retina" or "1710 x 1107 @ 60.00Hz"
	resolutionRegex = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)
)

// parseXdpyinfo extracts the screen size and density from xdpyinfo output.
// We look for "dimensions:    1920x1080 pixels (508x285 millimeters)" and
// "resolution:    96x96 dots per inch".
func parseXdpyinfo(out string) (Display, error) {
	var d Display
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "dimensions:":
			if d.Width != 0 {
				continue // first screen only
			}
			w, h, err := parseResolutionString(fields[1])
			if err != nil {
				return Display{}, err
			}
			d.Width, d.Height = w, h
		case "resolution:":
			if d.Scale != 0 {
				continue
			}
			dpi, _, err := parseResolutionString(fields[1])
			if err == nil && dpi > 0 {
				d.Scale = float64(dpi) / BaselineDPI
			}
		}
	}
	if !d.Valid() {
		return Display{}, fmt.Errorf("failed to parse screen resolution")
	}
	if d.Scale == 0 {
		d.Scale = 1
	}
	return d, nil
}

// systemProfilerOutput represents the nested structure of system_profiler -json
type systemProfilerOutput struct {
	Displays []gpuInfo `json:"SPDisplaysDataType"`
}

type gpuInfo struct {
	NDRVs []displayInfo `json:"spdisplays_ndrvs"`
}

type displayInfo struct {
	Pixels     string `json:"_spdisplays_pixels"`     // Physical pixels (e.g. "2880 x 1800")
	Resolution string `json:"_spdisplays_resolution"` // Logical size (e.g. "1440 x 900 @ 60.00Hz")
	Main       string `json:"spdisplays_main"`        // "spdisplays_yes"
}

// parseSystemProfiler extracts the main display from system_profiler -json output.
func parseSystemProfiler(data []byte) (Display, error) {
	var profiler systemProfilerOutput
	if err := json.Unmarshal(data, &profiler); err != nil {
		return Display{}, fmt.Errorf("decoding system_profiler JSON: %w", err)
	}

	var chosen *displayInfo
	for gi := range profiler.Displays {
		for di := range profiler.Displays[gi].NDRVs {
			if profiler.Displays[gi].NDRVs[di].Main == "spdisplays_yes" {
				chosen = &profiler.Displays[gi].NDRVs[di]
				break
			}
		}
		if chosen != nil {
			break
		}
	}
	// Fallback: first display of the first GPU
	if chosen == nil && len(profiler.Displays) > 0 && len(profiler.Displays[0].NDRVs) > 0 {
		chosen = &profiler.Displays[0].NDRVs[0]
	}
	if chosen == nil {
		return Display{}, fmt.Errorf("no displays found in system_profiler output")
	}

	w, h, err := parseResolutionString(chosen.Pixels)
	if err != nil {
		return Display{}, err
	}
	d := Display{Width: w, Height: h, Scale: 1}
	if lw, _, err := parseResolutionString(chosen.Resolution); err == nil && lw > 0 {
		d.Scale = float64(w) / float64(lw)
	}
	return d, nil
}

func parseResolutionString(s string) (int, int, error) {
	matches := resolutionRegex.FindStringSubmatch(s)
	if len(matches) < 3 {
		return 0, 0, fmt.Errorf("failed to parse resolution from string: %s", s)
	}

	width, errW := strconv.Atoi(matches[1])
	height, errH := strconv.Atoi(matches[2])
	if errW != nil || errH != nil {
		return 0, 0, fmt.Errorf("failed to convert dimensions: %v, %v", errW, errH)
	}

	return width, height, nil
}
