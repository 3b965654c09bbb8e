package hopf

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Sizes of the built-in fiber families.
const (
	LatitudeFamilySize = 50
	RotatedFamilySize  = 100
)

// LatitudeCircle returns n base points on the circle of S² at latitude theta
// (x = sin theta), swept from t = 0 to t = cutoff.
func LatitudeCircle(theta, cutoff float64, n int) ([]Point3, error) {
	ts, err := Linspace(0, cutoff, n)
	if err != nil {
		return nil, err
	}
	sinTheta, cosTheta := math.Sincos(theta)
	points := make([]Point3, len(ts))
	for i, t := range ts {
		sin, cos := math.Sincos(t)
		points[i] = Point3{X: sinTheta, Y: cosTheta * sin, Z: cosTheta * cos}
	}
	return points, nil
}

// LatitudeFamily returns one latitude circle per theta.
func LatitudeFamily(thetas []float64, cutoff float64, n int) ([][]Point3, error) {
	family := make([][]Point3, 0, len(thetas))
	for _, theta := range thetas {
		points, err := LatitudeCircle(theta, cutoff, n)
		if err != nil {
			return nil, err
		}
		family = append(family, points)
	}
	return family, nil
}

// RotatedCircleFamily returns n points of the great circle x = 0 rotated by the
// Euler angles (in radians) applied in XYZ order.
func RotatedCircleFamily(angles [3]float64, n int) ([]Point3, error) {
	ts, err := Linspace(0, 2*math.Pi, n)
	if err != nil {
		return nil, err
	}
	q := eulerXYZ(angles[0], angles[1], angles[2])
	points := make([]Point3, len(ts))
	for i, t := range ts {
		sin, cos := math.Sincos(t)
		points[i] = rotate(Point3{X: 0, Y: sin, Z: cos}, q)
	}
	return points, nil
}

// eulerXYZ composes the rotation R = Rx·Ry·Rz as a unit quaternion.
func eulerXYZ(x, y, z float64) quat.Number {
	qx := axisAngle(Point3{X: 1}, x)
	qy := axisAngle(Point3{Y: 1}, y)
	qz := axisAngle(Point3{Z: 1}, z)
	return quat.Mul(quat.Mul(qx, qy), qz)
}

func axisAngle(axis Point3, angle float64) quat.Number {
	sin, cos := math.Sincos(angle / 2)
	return quat.Number{Real: cos, Imag: axis.X * sin, Jmag: axis.Y * sin, Kmag: axis.Z * sin}
}

func rotate(p Point3, q quat.Number) Point3 {
	v := quat.Number{Imag: p.X, Jmag: p.Y, Kmag: p.Z}
	r := quat.Mul(quat.Mul(q, v), quat.Conj(q))
	return Point3{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}
