// Package window generates the tapering windows used by windowed-sinc FIR
// design.
//
// Windows are generated in symmetric form, the form FIR design needs.
package window
