package classifier

import (
	"errors"
	"math"

	"github.com/hank31169638/cloud-tennis/internal/domain/entity"
	"gonum.org/v1/gonum/stat"
)

// FeaturesPerJoint is the number of movement features derived for each joint:
// mean x, mean y, std x, std y and mean speed of the hip-centred position.
const FeaturesPerJoint = 5

// MinVisibility is the visibility below which a keypoint is treated as missing.
const MinVisibility = 0.3

var errNoPose = errors.New("no detectable pose sequence")

type point struct{ x, y float64 }

// extractFeatures turns a pose sequence into the feature vector laid out for
// joints. Joints the sequence does not report contribute zeros.
func extractFeatures(seq *entity.PoseSequence, joints []string) ([]float64, error) {
	slot := make(map[string]int, len(seq.Joints))
	for i, name := range seq.Joints {
		slot[name] = i
	}

	frames := centredFrames(seq, slot)
	if len(frames) == 0 {
		return nil, errNoPose
	}

	features := make([]float64, 0, FeaturesPerJoint*len(joints))
	for _, name := range joints {
		i, ok := slot[name]
		if !ok {
			features = append(features, make([]float64, FeaturesPerJoint)...)
			continue
		}
		features = append(features, jointFeatures(frames, i)...)
	}
	return features, nil
}

// centredFrames drops frames without any visible joint and re-expresses the
// rest relative to the hip centre (or the visible-joint centroid when hips are
// not visible). Missing joints are nil.
func centredFrames(seq *entity.PoseSequence, slot map[string]int) [][]*point {
	var frames [][]*point
	for _, f := range seq.Frames {
		if len(f.Keypoints) != len(seq.Joints) {
			continue
		}
		cx, cy, ok := frameCentre(f.Keypoints, slot)
		if !ok {
			continue
		}
		pts := make([]*point, len(f.Keypoints))
		for i, kp := range f.Keypoints {
			if kp.Visibility < MinVisibility {
				continue
			}
			pts[i] = &point{x: kp.X - cx, y: kp.Y - cy}
		}
		frames = append(frames, pts)
	}
	return frames
}

func frameCentre(kps []entity.Keypoint, slot map[string]int) (float64, float64, bool) {
	l, lok := slot["left_hip"]
	r, rok := slot["right_hip"]
	if lok && rok && kps[l].Visibility >= MinVisibility && kps[r].Visibility >= MinVisibility {
		return (kps[l].X + kps[r].X) / 2, (kps[l].Y + kps[r].Y) / 2, true
	}

	var xs, ys []float64
	for _, kp := range kps {
		if kp.Visibility >= MinVisibility {
			xs = append(xs, kp.X)
			ys = append(ys, kp.Y)
		}
	}
	if len(xs) == 0 {
		return 0, 0, false
	}
	return stat.Mean(xs, nil), stat.Mean(ys, nil), true
}

func jointFeatures(frames [][]*point, joint int) []float64 {
	var xs, ys, speeds []float64
	var prev *point
	for _, pts := range frames {
		p := pts[joint]
		if p == nil {
			prev = nil
			continue
		}
		xs = append(xs, p.x)
		ys = append(ys, p.y)
		if prev != nil {
			speeds = append(speeds, math.Hypot(p.x-prev.x, p.y-prev.y))
		}
		prev = p
	}

	out := make([]float64, FeaturesPerJoint)
	if len(xs) == 0 {
		return out
	}
	out[0], out[2] = meanStd(xs)
	out[1], out[3] = meanStd(ys)
	if len(speeds) > 0 {
		out[4] = stat.Mean(speeds, nil)
	}
	return out
}

func meanStd(xs []float64) (float64, float64) {
	if len(xs) < 2 {
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}
