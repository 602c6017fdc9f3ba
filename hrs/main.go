package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cgxeiji/hrs"
	"github.com/cgxeiji/hrs/hrs3300"
)

func main() {
	bus := flag.String("bus", "", "I²C bus name")
	bits := flag.Int("bits", 14, "ADC resolution in bits (8 to 18)")
	n := flag.Int("n", 1000, "number of samples")
	flag.Parse()

	res, err := hrs3300.ResolutionBits(*bits)
	if err != nil {
		log.Fatal(err)
	}

	sensor, err := hrs.New(hrs.OnBus(*bus), hrs.WithResolution(res))
	if err != nil {
		log.Fatal(err)
	}
	defer sensor.Close()

	id, err := sensor.Sensor().DeviceID()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%v detected (ID %#02x)\n", sensor.Sensor(), id)

	t := time.NewTicker(40 * time.Millisecond)
	defer t.Stop()

	valid := 0
	for i := 0; i < *n; i++ {
		<-t.C
		bpm, ok, err := sensor.SampleOne()
		if errors.Is(err, hrs.ErrNotDetected) {
			fmt.Printf("\rno contact            ")
			continue
		} else if err != nil {
			log.Println(err)
			continue
		}
		valid++
		if ok {
			fmt.Printf("\rbpm = %5.1f pi = %.4f ", bpm, sensor.Perfusion())
		}
	}
	fmt.Printf("\n%d valid samples\n", valid)
}
