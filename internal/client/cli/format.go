package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/arcanedex/internal/client/api"
	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
)

type usageError string

func (u usageError) Error() string { return "Usage: " + string(u) }

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, usageError(usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError(usage)
	}
	return id, nil
}

var kindText = map[api.Kind]string{
	api.KindUnavailable:        "Server unavailable, check your connection.",
	api.KindUnauthorized:       "Your session has expired, please log in again.",
	api.KindInvalidCredentials: "Invalid password.",
	api.KindUserNotFound:       "User not found.",
	api.KindEmailTaken:         "This email is already registered.",
	api.KindUsernameTaken:      "This username is already taken.",
	api.KindForbidden:          "You are not allowed to do that.",
	api.KindNotFound:           "Not found.",
	api.KindRateLimited:        "Too many requests, try again in a moment.",
	api.KindServer:             "The server failed to process the request.",
	api.KindDecode:             "The server sent an unexpected response.",
}

var sentinelText = []struct {
	err  error
	text string
}{
	{common.ErrTermsNotAccept, "Accept the terms of use first (type 'terms')."},
	{common.ErrNotLoggedIn, "Please log in first."},
	{common.ErrTokenExpired, "Your session has expired, please log in again."},
	{common.ErrInvalidToken, "The server issued an unusable session, try again."},
	{common.ErrNotAdmin, "Admin role required."},
	{common.ErrBusy, "Still loading, please wait."},
	{common.ErrOffline, "Not available while offline."},
	{common.ErrWeakPassword, "Password must have at least 8 characters and one of @#$%^&+=!"},
	{common.ErrEmptyField, "Required field is empty."},
	{common.ErrNotImageRef, "Not a valid image (URL, data URI or image file expected)."},
}

// errorText maps an error to the line shown to the user.
func errorText(err error) string {
	var u usageError
	if errors.As(err, &u) {
		return u.Error()
	}
	for _, s := range sentinelText {
		if errors.Is(err, s.err) {
			return s.text
		}
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Kind == api.KindValidation && apiErr.Message != "" {
			return apiErr.Message
		}
		if t, ok := kindText[apiErr.Kind]; ok {
			return t
		}
	}
	return "Error: " + err.Error()
}

func formatCreature(c models.Creature) string {
	star := " "
	if c.IsFavoriteToUser {
		star = "*"
	}
	return fmt.Sprintf("%s %4d  %s", star, c.ID, c.Name)
}

func describeImage(s *string) string {
	ref, err := models.ParseImageRef(s)
	if err != nil {
		return "invalid image"
	}
	return ref.Describe()
}

func formatDetails(c models.Creature) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s\n", c.ID, c.Name)
	fmt.Fprintf(&b, "Image: %s\n", describeImage(c.Img))
	if c.IsFavoriteToUser {
		b.WriteString("Favorite: yes\n")
	}
	if c.Lore != "" {
		fmt.Fprintf(&b, "\n%s\n", c.Lore)
	}
	return b.String()
}
