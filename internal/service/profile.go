package service

import (
	"errors"
	"strings"

	"github.com/njprem/Fit_city_Booking/internal/domain"
)

// ValidateProfileUpdate checks only the fields present in u. A present name,
// email or phone may not be blank.
func ValidateProfileUpdate(u domain.UserProfileUpdate) error {
	var errs []error
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, domain.ValidationError{Field: "name", Msg: "name is required"})
	}
	if u.Email != nil {
		switch email := strings.TrimSpace(*u.Email); {
		case email == "":
			errs = append(errs, domain.ValidationError{Field: "email", Msg: "email is required"})
		case !emailPattern.MatchString(email):
			errs = append(errs, domain.ValidationError{Field: "email", Msg: "email is invalid"})
		}
	}
	if u.Phone != nil {
		switch phone := strings.TrimSpace(*u.Phone); {
		case phone == "":
			errs = append(errs, domain.ValidationError{Field: "phone", Msg: "phone number is required"})
		case !phonePattern.MatchString(phone):
			errs = append(errs, domain.ValidationError{Field: "phone", Msg: "phone number is invalid"})
		}
	}
	return errors.Join(errs...)
}

// UpdateProfile validates u and merges it into the store's profile.
func UpdateProfile(store *Store, u domain.UserProfileUpdate) (domain.UserProfile, error) {
	if err := ValidateProfileUpdate(u); err != nil {
		return domain.UserProfile{}, err
	}
	return store.UpdateUser(trimProfileUpdate(u)), nil
}

func trimProfileUpdate(u domain.UserProfileUpdate) domain.UserProfileUpdate {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	return domain.UserProfileUpdate{
		Name:   trim(u.Name),
		Email:  trim(u.Email),
		Phone:  trim(u.Phone),
		Avatar: trim(u.Avatar),
	}
}
