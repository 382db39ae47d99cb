// Package render holds the visual style shared by every output of a packed
// hierarchy: the browser chart and the snapshot sinks in [sink].
//
// Internal circles are filled by depth on a linear scale over [0, 5] between
// hsl(200,80%,80%) and hsl(228,30%,40%), interpolated in HCL space. Leaves are
// white and the background takes the depth-0 colour.
//
// [sink]: github.com/matzehuels/packview/pkg/render/sink
package render
