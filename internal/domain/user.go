package domain

type UserProfile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar,omitempty"`
}

type UserProfileUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

func DefaultUserProfile() UserProfile {
	return UserProfile{
		Name:   "John Traveler",
		Email:  "john@example.com",
		Phone:  "+1 234 567 8900",
		Avatar: "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=200",
	}
}

func (p UserProfile) Merge(u UserProfileUpdate) UserProfile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Avatar != nil {
		p.Avatar = *u.Avatar
	}
	return p
}
