package entity

// Keypoint is one detected joint in image-normalised coordinates.
type Keypoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Visibility float64 `json:"visibility"`
}

type PoseFrame struct {
	Index     int        `json:"index"`
	Keypoints []Keypoint `json:"keypoints"`
}

// PoseSequence is the per-frame skeleton of a single subject. Joints names the
// keypoint slots; every frame carries len(Joints) keypoints or none at all
// when no subject was detected.
type PoseSequence struct {
	Joints []string    `json:"joints"`
	Frames []PoseFrame `json:"frames"`
}
