package zerophase_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/design"
	"github.com/cwbudde/algo-ecg/dsp/filter/zerophase"
)

func ExampleCascade() {
	const fs = 360.0

	x := make([]float64, 2160)
	for i := range x {
		t := float64(i) / fs
		x[i] = math.Sin(2*math.Pi*5*t) + 0.5*math.Sin(2*math.Pi*50*t)
	}

	bank, err := design.IIRBank(4, fs)
	if err != nil {
		fmt.Println(err)
		return
	}

	y, err := zerophase.Cascade(bank, core.MustTimeSeries(x, fs))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(y.Len(), y.SampleRate())

	_, err = zerophase.Cascade(bank, core.MustTimeSeries([]float64{1, 2, 3}, fs))
	fmt.Println(err)
	// Output:
	// 2160 360
	// High-Pass IIR: zerophase: length=3 must exceed 15 samples for High-Pass IIR: signal too short
}
