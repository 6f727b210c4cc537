package scoreboard

// DeepMerge returns base with overlay merged on top. Records present on both
// sides merge recursively; arrays and scalars from overlay replace the base
// value wholesale. Neither input is modified.
func DeepMerge(base, overlay map[string]any) map[string]any {
	out := cloneValue(base).(map[string]any)
	if out == nil {
		out = map[string]any{}
	}
	for k, ov := range overlay {
		bm, baseIsMap := asMap(out[k])
		om, overlayIsMap := asMap(ov)
		if baseIsMap && overlayIsMap {
			out[k] = DeepMerge(bm, om)
			continue
		}
		out[k] = cloneValue(ov)
	}
	return out
}
