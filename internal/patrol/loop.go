package patrol

// LoopResult describes how a patrol ended.
type LoopResult struct {
	Loop     bool     // a waypoint repeated; the guard patrols forever
	Steps    int      // waypoints consumed, including the repeat
	Repeated Waypoint // the first repeated waypoint, valid when Loop is set
}

// DetectLoop follows the guard until a waypoint repeats or the guard leaves
// the grid. A grid has at most 4*W*H distinct waypoints, so the run always
// ends within that many steps plus the repeat.
func DetectLoop(g Guard, idx *ObstacleIndex, b Bounds) LoopResult {
	seen := make(map[Waypoint]struct{})
	var res LoopResult

	for wp := range NewRouteFrom(g, idx, b).Waypoints() {
		res.Steps++
		if _, dup := seen[wp]; dup {
			res.Loop = true
			res.Repeated = wp
			break
		}
		seen[wp] = struct{}{}
	}
	return res
}

// IsLoop reports whether the map's guard patrols forever.
func IsLoop(m Map) bool {
	return DetectLoop(m.Start, m.Obstacles, m.Bounds).Loop
}
