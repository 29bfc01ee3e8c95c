// SPDX-License-Identifier: EPL-2.0

// Package normalizer implements a streaming dynamic audio normalizer.
//
// Audio is cut into fixed-length frames. Every frame is measured (peak, RMS,
// optionally after removing its DC bias), turned into a gain factor that
// would bring its peak to the target, and the sequence of gain factors is
// smoothed with a symmetric kernel so single loud or quiet frames do not
// cause audible pumping. The smoothed gain is applied with a linear ramp
// from the previous frame's gain, which keeps the effective gain continuous
// at frame boundaries.
//
// # Usage
//
//	cfg := normalizer.DefaultConfig(2, 48000)
//	n, err := normalizer.New(cfg)
//	if err != nil {
//	    return err
//	}
//
//	in := [][]float64{left, right}
//	out := [][]float64{make([]float64, 4096), make([]float64, 4096)}
//
//	written, err := n.Process(in, out)
//	// out[c][:written] holds normalized samples
//
//	// at end of stream drain what is still buffered
//	for {
//	    written, err := n.Flush(out)
//	    if err != nil || written == 0 {
//	        break
//	    }
//	}
//
// # Latency
//
// A frame can only be emitted once the raw gains of the following
// FilterSize/2 frames are known, and never before the next frame's raw gain,
// so output lags input by Latency() frames.
// Process may therefore return fewer samples than were fed, including none
// at all at the start of a stream. Flush releases everything that is left;
// over a whole stream the number of samples returned equals the number fed.
//
// # Channels
//
// With ChannelsCoupled every channel receives the same gain, derived from
// the loudest channel of each frame. Otherwise each channel is normalized
// on its own.
//
// # Errors
//
// New reports ErrInvalidConfiguration. Process and Flush report
// ErrInvalidArgument for malformed buffers without touching the state.
// ErrInternalInvariant means the bookkeeping broke; the instance is halted.
package normalizer
