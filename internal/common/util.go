package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Use it on passwords once hashing or verification is done.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
