// Command rotate loads PCK/BPC orientation kernels and a planetary constants
// dataset, then reports the rotation from a body-fixed frame to its parent
// inertial frame at a given epoch.
//
// Usage:
//
//	rotate -kernel earth_latest_high_prec.bpc -constants gm_de440.pc -body 399 -epoch 0
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/starhaven/spicekit/almanac"
	"github.com/starhaven/spicekit/ephemtime"
	"github.com/starhaven/spicekit/spk"
)

func main() {
	var kernelPaths, constantsPaths stringList
	flag.Var(&kernelPaths, "kernel", "path to a DAF/PCK (BPC) orientation kernel; may be repeated")
	flag.Var(&constantsPaths, "constants", "path to a self-describing constants dataset; may be repeated")
	body := flag.Int("body", spk.Earth, "NAIF ID of the body whose orientation to resolve")
	epochSec := flag.Float64("epoch", 0, "TDB seconds past J2000")
	flag.Parse()

	a := almanac.New()
	for _, path := range append(append(stringList{}, kernelPaths...), constantsPaths...) {
		buf, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("reading %s: %v", path, err)
		}
		a, err = a.LoadBytes(buf)
		if err != nil {
			log.Fatalf("loading %s: %v", path, err)
		}
	}

	epoch := ephemtime.FromTDBSeconds(*epochSec)
	dcm, dcmRate, err := a.RotationToParent(*body, epoch)
	if err != nil {
		log.Fatalf("rotate body %d: %v", *body, err)
	}

	fmt.Printf("orientation of body %s at TDB %.3f:\n", bodyLabel(*body), *epochSec)
	fmt.Println("  DCM (body-fixed -> inertial):")
	for _, row := range dcm {
		fmt.Printf("    %+12.9f %+12.9f %+12.9f\n", row[0], row[1], row[2])
	}
	fmt.Println("  d(DCM)/dt:")
	for _, row := range dcmRate {
		fmt.Printf("    %+12.9e %+12.9e %+12.9e\n", row[0], row[1], row[2])
	}
}

// stringList collects repeated flag values.
type stringList []string

func (l *stringList) String() string { return fmt.Sprint([]string(*l)) }
func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// bodyLabel formats a NAIF ID with its common name where spk's body table
// has one, falling back to the bare ID otherwise.
func bodyLabel(id int) string {
	if name, ok := spk.BodyName(id); ok {
		return fmt.Sprintf("%d (%s)", id, name)
	}
	return fmt.Sprintf("%d", id)
}
