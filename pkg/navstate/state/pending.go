package state

// PendingNavigation is a stored canonical route + params to resume once an
// external condition (typically authentication) is satisfied. It survives
// intermediate navigations and is only cleared by an explicit resume or
// ClearPendingNavigation (spec §3, §4.5).
type PendingNavigation struct {
	Route       string
	Params      Params
	Metadata    map[string]interface{}
	DisplayHint string
}

// Clone returns a defensive copy of p, or nil if p is nil.
func (p *PendingNavigation) Clone() *PendingNavigation {
	if p == nil {
		return nil
	}
	meta := make(map[string]interface{}, len(p.Metadata))
	for k, v := range p.Metadata {
		meta[k] = v
	}
	return &PendingNavigation{
		Route:       p.Route,
		Params:      p.Params.Clone(),
		Metadata:    meta,
		DisplayHint: p.DisplayHint,
	}
}
