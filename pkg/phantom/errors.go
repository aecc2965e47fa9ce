package phantom

import "errors"

// Sentinel errors returned by the phantom generator. Every failure aborts
// the whole call; there is no internal recovery or partial result.
var (
	// ErrTableShape indicates a raw parameter table whose rows do not have
	// exactly nine columns.
	ErrTableShape = errors.New("parameter table rows must have 9 columns")

	// ErrUnknownEnum indicates an unrecognized archetype tag or voxelization
	// mode. Unknown tags never fall back to a default.
	ErrUnknownEnum = errors.New("unknown enumeration tag")

	// ErrOutsideFOV indicates an ellipsoid whose extent leaves the physical
	// bounds of the grid. Only raised when FOV checking is requested.
	ErrOutsideFOV = errors.New("ellipsoid extends outside the grid field of view")

	// ErrUnsupported indicates a requested configuration the generator does
	// not implement, such as a nonzero polar rotation.
	ErrUnsupported = errors.New("unsupported configuration")
)
