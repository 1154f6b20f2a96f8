package vision

import "math"

// MeshPoints is the number of keypoints in the face mesh scheme the landmark
// model emits. Anything shorter cannot be measured.
const MeshPoints = 468

// Point is one normalized facial keypoint in image space: X grows rightward,
// Y grows downward. Z is present for 3D models and unused here.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Detection is one detected face as returned by the inference capability.
type Detection struct {
	Keypoints []Point `json:"keypoints"`
	Box       *Box    `json:"box,omitempty"`
}

type Box struct {
	XMin   float64 `json:"xMin"`
	YMin   float64 `json:"yMin"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Named mesh indices used for metric computation.
const (
	idxMouthLeft  = 61
	idxMouthRight = 291
	idxLipTop     = 13
	idxLipBottom  = 14

	idxLeftEyeOuter  = 33
	idxLeftEyeInner  = 133
	idxLeftEyeTop    = 159
	idxLeftEyeBottom = 145

	idxRightEyeInner  = 362
	idxRightEyeOuter  = 263
	idxRightEyeTop    = 386
	idxRightEyeBottom = 374

	idxLeftBrow  = 70
	idxRightBrow = 300

	idxLeftTemple  = 234
	idxRightTemple = 454
)

// Metrics are the dimensionless expression ratios derived from one keypoint
// set. Every ratio is normalized by a face-relative distance, so the values
// are invariant to face size and camera distance.
type Metrics struct {
	SmileRatio     float64
	MouthOpenRatio float64
	LeftEAR        float64
	RightEAR       float64
	AvgEAR         float64
	BrowRatio      float64
	// MouthCurvature is the signed vertical offset between the mouth center
	// and the mouth corners. Positive means the corners sit above the center
	// (upturned, smiling); negative means a frown.
	MouthCurvature float64
}

// ExtractMetrics derives expression metrics from a full keypoint set. Returns
// ok=false when the set is too short to index or degenerate (zero face
// width); callers treat that as "no usable face in frame".
func ExtractMetrics(points []Point) (Metrics, bool) {
	if len(points) < MeshPoints {
		return Metrics{}, false
	}

	faceWidth := dist(points[idxLeftTemple], points[idxRightTemple])
	mouthWidth := dist(points[idxMouthLeft], points[idxMouthRight])
	leftEyeWidth := dist(points[idxLeftEyeOuter], points[idxLeftEyeInner])
	rightEyeWidth := dist(points[idxRightEyeInner], points[idxRightEyeOuter])
	if faceWidth == 0 || mouthWidth == 0 || leftEyeWidth == 0 || rightEyeWidth == 0 {
		return Metrics{}, false
	}

	m := Metrics{
		SmileRatio:     mouthWidth / faceWidth,
		MouthOpenRatio: dist(points[idxLipTop], points[idxLipBottom]) / mouthWidth,
		LeftEAR:        dist(points[idxLeftEyeTop], points[idxLeftEyeBottom]) / leftEyeWidth,
		RightEAR:       dist(points[idxRightEyeTop], points[idxRightEyeBottom]) / rightEyeWidth,
	}
	m.AvgEAR = (m.LeftEAR + m.RightEAR) / 2

	leftEyeCenterY := (points[idxLeftEyeTop].Y + points[idxLeftEyeBottom].Y) / 2
	rightEyeCenterY := (points[idxRightEyeTop].Y + points[idxRightEyeBottom].Y) / 2
	leftBrowGap := math.Abs(leftEyeCenterY - points[idxLeftBrow].Y)
	rightBrowGap := math.Abs(rightEyeCenterY - points[idxRightBrow].Y)
	m.BrowRatio = (leftBrowGap + rightBrowGap) / 2 / faceWidth

	// Y grows downward, so corners above the mouth center give a positive
	// curvature.
	cornerY := (points[idxMouthLeft].Y + points[idxMouthRight].Y) / 2
	centerY := (points[idxLipTop].Y + points[idxLipBottom].Y) / 2
	m.MouthCurvature = centerY - cornerY

	return m, true
}

func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
