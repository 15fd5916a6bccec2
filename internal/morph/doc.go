// Package morph turns one image into another by moving its pixels.
//
// Both images are normalized to the same square grid, every grid cell is
// reduced to a brightness value, and the two cell sets are paired by
// brightness rank. Each pair becomes a [Point] that travels from its source
// position to its target position while carrying the source colour.
//
//   - [Normalize]: aspect-fill scale and centre crop to an N×N buffer
//   - [SampleImage]: per-cell brightness in row-major order
//   - [BuildCorrespondence]: rank pairing with random wobble phases
//   - [Driver]: per-frame progress and tick state machine
//   - [Renderer]: eased interpolation plus wobble, painted onto a [Surface]
//   - [Session]: status tracking, auto-start and replay for a host loop
//
// # Example
//
//	s, _ := morph.NewSession(morph.DefaultParams())
//	_ = s.LoadTargetFile("portrait.jpg")
//	_ = s.LoadSourceFile("me.png")
//	for host.NextFrame() {
//		s.Frame()
//		s.Render(surface)
//	}
//
// # Thread Safety
//
// Session and Driver are NOT thread-safe. They are meant to be owned by a
// single per-frame callback; the host loop advances and renders within the
// same synchronous step.
package morph
