package lattice

// CellType classifies how the propagate+collide kernel treats a cell:
// a normal collision site, or one of the two wall behaviors.
type CellType uint8

const (
	// Fluid cells apply the model's collision LUT.
	Fluid CellType = iota
	// SolidNoSlip cells bounce every arriving particle straight back
	// (BB_LUT).
	SolidNoSlip
	// SolidSlip cells pass particles through unchanged except for a
	// specular mirror applied on the grid edges they sit on
	// (BF_X_LUT / BF_Y_LUT).
	SolidSlip
)

func (t CellType) String() string {
	switch t {
	case Fluid:
		return "FLUID"
	case SolidNoSlip:
		return "SOLID_NO_SLIP"
	case SolidSlip:
		return "SOLID_SLIP"
	default:
		return "UNKNOWN"
	}
}
