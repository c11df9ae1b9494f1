package protocol

// CRC-16/XMODEM parameters: MSB-first, no reflection, no final XOR.
const (
	crcPolynomial = 0x1021
	crcInitial    = 0x0000
)

// Checksum computes the CRC-16/XMODEM checksum used by GazModem frames.
// The frame checksum covers the length field through the last body byte.
func Checksum(data []byte) uint16 {
	crc := uint16(crcInitial)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
