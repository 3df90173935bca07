package profile

type Profiles struct {
	Items []*Profile
}

func (p *Profiles) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}

// FindByID returns the first profile with the given id or nil.
func (p *Profiles) FindByID(id string) *Profile {
	if p == nil {
		return nil
	}
	for _, profile := range p.Items {
		if profile.ID == id {
			return profile
		}
	}
	return nil
}

func (p *Profiles) IDs() []string {
	ids := make([]string, 0, p.Len())
	if p == nil {
		return ids
	}
	for _, profile := range p.Items {
		ids = append(ids, profile.ID)
	}
	return ids
}
