// Package scene is the small retained scene graph shared by the terminal and
// windowed front ends.
//
// A [Scene] holds an ordered set of objects ([Line], [Marker], [Sphere],
// [Axes]). Lines and markers own a geometry and a material [Buffer] handed out
// by a [Tracker]; disposing an object releases both exactly once. A perspective
// [Camera] casts picking rays and projects points for the software renderer.
package scene
