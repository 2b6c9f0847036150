package opcda

// Quality is the tri-state reliability indicator attached to every data
// point. It is derived from the top two bits of the native 8-bit status
// code; sub-status and limit bits are discarded at this layer.
type Quality uint8

const (
	// QualityBad marks data that must not be trusted.
	QualityBad Quality = iota
	// QualityUncertain marks data of unknown reliability.
	QualityUncertain
	// QualityGood marks trustworthy data.
	QualityGood
)

const qualityMask = 0xC0

// QualityFromRaw derives a Quality from a native status code. Unknown masked
// combinations default to Uncertain.
func QualityFromRaw(raw int32) Quality {
	switch raw & qualityMask {
	case 0xC0:
		return QualityGood
	case 0x40:
		return QualityUncertain
	case 0x00:
		return QualityBad
	default:
		return QualityUncertain
	}
}

// Raw returns the native status code for q with all unused low bits forced
// to zero, so a decode of the result round-trips.
func (q Quality) Raw() int32 {
	switch q {
	case QualityGood:
		return 0xC0
	case QualityUncertain:
		return 0x40
	default:
		return 0
	}
}

func (q Quality) String() string {
	switch q {
	case QualityGood:
		return "Good"
	case QualityUncertain:
		return "Uncertain"
	default:
		return "Bad"
	}
}
