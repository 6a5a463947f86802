package pipeline

import "io"

// monoTap sits between the decoder and the audio sink's reader: the player
// pulls interleaved 16-bit stereo PCM through it, and every frame that
// passes is downmixed to mono, decimated, and pushed into the SampleSink.
// The pull side is untouched, so playback continues even after the sink
// stops accepting samples.
//
// Reads are not guaranteed to align to frame boundaries; up to three bytes
// carry over between calls.
type monoTap struct {
	src      io.Reader
	sink     SampleSink
	decim    int // Forward every decim-th mono sample.
	count    int
	carry    [4]byte
	carryLen int
	stopped  bool
}

func newMonoTap(src io.Reader, sink SampleSink, decim int) *monoTap {
	if decim < 1 {
		decim = 1
	}
	return &monoTap{src: src, sink: sink, decim: decim}
}

func (t *monoTap) Read(p []byte) (int, error) {
	n, err := t.src.Read(p)
	if n > 0 && !t.stopped {
		t.consume(p[:n])
	}
	return n, err
}

func (t *monoTap) consume(b []byte) {
	i := 0
	if t.carryLen > 0 {
		for t.carryLen < 4 && i < len(b) {
			t.carry[t.carryLen] = b[i]
			t.carryLen++
			i++
		}
		if t.carryLen < 4 {
			return
		}
		t.pushFrame(t.carry[:])
		t.carryLen = 0
	}
	for ; i+4 <= len(b); i += 4 {
		t.pushFrame(b[i : i+4])
	}
	for ; i < len(b); i++ {
		t.carry[t.carryLen] = b[i]
		t.carryLen++
	}
}

func (t *monoTap) pushFrame(f []byte) {
	left := int16(uint16(f[0]) | uint16(f[1])<<8)
	right := int16(uint16(f[2]) | uint16(f[3])<<8)
	mono := int16((int32(left) + int32(right)) / 2)

	t.count++
	if t.count%t.decim != 0 {
		return
	}
	if err := t.sink.Ingest(mono); err != nil {
		// Consumer gone. Keep playing, stop forwarding.
		t.stopped = true
	}
}
