// Command translate loads one or more SPK kernels and reports the position
// and velocity of one body relative to another at a given epoch.
//
// Usage:
//
//	translate -kernel de440s.bsp -from 399 -to 10 -epoch 0
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
	var kernelPaths stringList
	flag.Var(&kernelPaths, "kernel", "path to a DAF/SPK kernel; may be repeated")
	from := flag.Int("from", spk.Earth, "NAIF ID of the body to translate")
	to := flag.Int("to", spk.SSB, "NAIF ID of the body to translate relative to")
	epochSec := flag.Float64("epoch", 0, "TDB seconds past J2000")
	flag.Parse()

	if len(kernelPaths) == 0 {
		fmt.Fprintln(os.Stderr, "translate: at least one -kernel is required")
		flag.Usage()
		os.Exit(2)
	}

	a := almanac.New()
	for _, path := range kernelPaths {
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
	pos, vel, err := a.TranslateFromTo(*from, *to, epoch)
	if err != nil {
		log.Fatalf("translate %d -> %d: %v", *from, *to, err)
	}

	fmt.Printf("body %s relative to body %s at TDB %.3f:\n", bodyLabel(*from), bodyLabel(*to), *epochSec)
	fmt.Printf("  position (km)   %+14.6f %+14.6f %+14.6f\n", pos.X, pos.Y, pos.Z)
	fmt.Printf("  velocity (km/s) %+14.6f %+14.6f %+14.6f\n", vel.X, vel.Y, vel.Z)
}

// stringList collects repeated -kernel flags.
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
