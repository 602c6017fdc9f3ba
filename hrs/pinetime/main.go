//go:build tinygo && nrf52

// Firmware for the PineTime: prints raw HRS3300 samples on the debug console.
package main

import (
	"machine"
	"time"

	"github.com/cgxeiji/hrs/hrs3300"
	"tinygo.org/x/drivers"
)

func main() {
	// internal bus shared with the BMA421 and the CST816S.
	i2c := machine.I2C1
	if err := i2c.Configure(machine.I2CConfig{
		SCL:       machine.P0_07,
		SDA:       machine.P0_06,
		Frequency: 400 * machine.KHz,
	}); err != nil {
		println("could not configure I2C:", err.Error())
		return
	}
	var bus drivers.I2C = i2c

	time.Sleep(10 * time.Millisecond)

	sensor, err := hrs3300.New(bus)
	if err != nil {
		println(err.Error())
		return
	}
	if err := sensor.Init(); err != nil {
		println("could not initialize HRS3300:", err.Error())
		return
	}
	time.Sleep(3 * time.Second)

	valid := 0
	println("--- DATA >>> ---")
	for i := 0; i < 1000; i++ {
		hrs, als, err := sensor.ReadRawSample()
		if err == nil {
			println(hrs, ",", als)
			valid++
		}
		time.Sleep(50 * time.Millisecond)
	}
	println("--- <<< DATA", valid, "---")

	sensor.Halt()
	for {
		time.Sleep(time.Hour)
	}
}
