package circuit

// Instance is a live component bound to one tile.
//
// A pipeline cycle calls Prepare on every instance, then Compute on every
// instance, then Commit on every instance:
//
//   - Prepare may read neighbors through Grid.DrivenSignal or
//     Grid.NetworkSignal and stage inputs. It
//     must not change anything another instance can observe.
//   - Compute derives the next output from the staged inputs only. It must
//     not read other instances.
//   - Commit publishes the computed output; Output returns it from then on.
//
// Honoring this makes a cycle independent of iteration order.
type Instance interface {
	Kind() Kind
	// Bind attaches the instance to grid g at tile at, seeding its committed
	// output with signal.
	Bind(g *Grid, at Point, signal bool)
	Prepare()
	Compute()
	Commit()
	// Output returns the last committed output.
	Output() bool
	// Active reports whether the instance is currently obtained from its pool.
	Active() bool
}

// Pool hands out inactive instances and takes them back.
type Pool interface {
	// Obtain returns an active instance of kind k positioned at world point at.
	Obtain(k Kind, at Vec) (Instance, error)
	// Release deactivates inst and returns it to the pool.
	Release(inst Instance)
}
