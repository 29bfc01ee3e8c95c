// SPDX-License-Identifier: EPL-2.0

package normalizer

// sampleQueue holds finalized planar samples until the caller collects them.
type sampleQueue struct {
	data [][]float64
	head int
}

func newSampleQueue(channels int) *sampleQueue {
	return &sampleQueue{data: make([][]float64, channels)}
}

func (q *sampleQueue) len() int {
	return len(q.data[0]) - q.head
}

func (q *sampleQueue) push(samples [][]float64) {
	for c, s := range samples {
		q.data[c] = append(q.data[c], s...)
	}
}

// pop moves up to len(dst[0]) samples per channel into dst.
func (q *sampleQueue) pop(dst [][]float64) int {
	if len(dst) == 0 {
		return 0
	}

	n := min(len(dst[0]), q.len())
	for c := range q.data {
		copy(dst[c][:n], q.data[c][q.head:q.head+n])
	}
	q.head += n

	switch {
	case q.len() == 0:
		for c := range q.data {
			q.data[c] = q.data[c][:0]
		}
		q.head = 0
	case q.head > q.len():
		// consumed prefix dominates, shift the remainder down
		for c := range q.data {
			m := copy(q.data[c], q.data[c][q.head:])
			q.data[c] = q.data[c][:m]
		}
		q.head = 0
	}

	return n
}
