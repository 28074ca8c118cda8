package skypaint

// Frame identifies the reference frame a 3D position or direction is
// expressed in. Conversions between frames go through the Observer.
type Frame int

const (
	// FrameICRF is the International Celestial Reference Frame, the
	// quasi-inertial frame catalogs use.
	FrameICRF Frame = iota
	// FrameCIRS is the Celestial Intermediate Reference System of date.
	FrameCIRS
	// FrameJNOW is the true equator and equinox of date.
	FrameJNOW
	// FrameObserved is the local horizontal frame after refraction:
	// x east, y north, z up.
	FrameObserved
	// FrameMount is the telescope mount frame.
	FrameMount
	// FrameView is the camera frame: right-handed, looking down -Z,
	// +Y up, +X right.
	FrameView
)

// frameCount is the number of frames a painter keeps clip info for.
const frameCount = 6

func (f Frame) String() string {
	switch f {
	case FrameICRF:
		return "ICRF"
	case FrameCIRS:
		return "CIRS"
	case FrameJNOW:
		return "JNOW"
	case FrameObserved:
		return "observed"
	case FrameMount:
		return "mount"
	case FrameView:
		return "view"
	}
	return "unknown"
}
