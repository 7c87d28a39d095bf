package terrasim

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/maseology/mmio"
)

func writeFloats(fp string, f []float32) error {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, f); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	return nil
}

// SaveSnapshotBins writes the snapshot fields as little-endian float32
// rasters alongside outdirprfx (elev/erosion/cumero/flux .bin).
func SaveSnapshotBins(outdirprfx string, snap Snapshot) error {
	if err := writeFloats(outdirprfx+"elev.bin", snap.Elevation); err != nil {
		return err
	}
	if err := writeFloats(outdirprfx+"erosion.bin", snap.ErosionRate); err != nil {
		return err
	}
	if err := writeFloats(outdirprfx+"cumero.bin", snap.CumulativeErosion); err != nil {
		return err
	}
	return writeFloats(outdirprfx+"flux.bin", snap.Flux)
}

// SaveSampleSpace records a survey as CSV, one line per realization with
// its unit coordinates and response.
func SaveSampleSpace(fp string, ranges []Range, runs []SampleRun) error {
	lns := make([]string, 0, len(runs)+1)
	hdr := "sample"
	for _, r := range ranges {
		hdr += fmt.Sprintf(",%s", r.Field)
	}
	lns = append(lns, hdr+",mean_eroded_depth")
	for k, sr := range runs {
		ln := fmt.Sprint(k)
		for _, u := range sr.U {
			ln += fmt.Sprintf(",%f", u)
		}
		lns = append(lns, ln+fmt.Sprintf(",%f", sr.MeanErodedDepth))
	}
	return mmio.WriteLines(fp, lns)
}
