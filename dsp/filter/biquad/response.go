package biquad

import "math/cmplx"

// ResponseAt evaluates H(e^jw) at the normalized angular frequency w
// (radians per sample, 0..pi).
func (c *Coefficients) ResponseAt(w float64) complex128 {
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := ejw * ejw

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := complex(1, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w
	return num / den
}

// ResponseAt returns the cascade response at normalized angular frequency w
// as the product of the section responses.
func (c *Chain) ResponseAt(w float64) complex128 {
	h := complex(1, 0)
	for i := range c.sections {
		h *= c.sections[i].ResponseAt(w)
	}
	return h
}
