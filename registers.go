package opt3002

// Register map of the OPT3002 (per datasheet, section 7.6).
const (
	regResult         byte = 0x00
	regConfig         byte = 0x01
	regLowLimit       byte = 0x02
	regHighLimit      byte = 0x03
	regManufacturerID byte = 0x7E
)

// ManufacturerID is the fixed content of register 0x7E ('TI' in ASCII).
const ManufacturerID uint16 = 0x5449

// DefaultAddress is the 7-bit bus address with the ADDR pin tied to GND.
//
// The ADDR pin selects one of four addresses:
//
//	ADDR -> GND = 0x44
//	ADDR -> VDD = 0x45
//	ADDR -> SDA = 0x46
//	ADDR -> SCL = 0x47
const DefaultAddress byte = 0x44

const (
	addressBase byte = 0b1000100
	addressMask byte = 0b1000111
)

// CoerceAddress forces the fixed high bits of the device's address family
// and masks to the four strap-selectable combinations. Out-of-range input
// is silently coerced to the nearest legal address, never rejected.
func CoerceAddress(raw byte) byte {
	return (raw | addressBase) & addressMask
}
