package models

type User struct {
	ID       uint    `json:"id"`
	Username string  `json:"username" validate:"required,max=64"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

func (v *User) Clone() *User {
	if v == nil {
		return nil
	}
	out := *v
	if v.Bio != nil {
		bio := *v.Bio
		out.Bio = &bio
	}
	if v.Avatar != nil {
		avatar := *v.Avatar
		out.Avatar = &avatar
	}
	return &out
}
