// Package profile reads and writes the owner's contact details, which live
// both in the account metadata and in the profiles table.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"maps"

	"restaurant_site/model"
)

// ErrPartialSave means the account side was written, the profile row was not,
// and the account could not be restored.
var ErrPartialSave = errors.New("profile partially saved")

type Data struct {
	Email          string `json:"email"`
	FullName       string `json:"fullName"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	FacebookURL    string `json:"facebookUrl"`
	InstagramURL   string `json:"instagramUrl"`
	TwitterURL     string `json:"twitterUrl"`
	TripadvisorURL string `json:"tripadvisorUrl"`
}

// Result tells the caller which side of a save persisted.
type Result struct {
	AuthSaved    bool `json:"authSaved"`
	ProfileSaved bool `json:"profileSaved"`
	RolledBack   bool `json:"rolledBack"`
}

type Accounts interface {
	FindByID(ctx context.Context, id uint) (*model.Account, error)
	UpdateMetadata(ctx context.Context, id uint, email string, metadata map[string]string) error
}

type Profiles interface {
	FindByUser(ctx context.Context, userID uint) (*model.Profile, error)
	Upsert(ctx context.Context, p *model.Profile) error
}

type Service struct {
	accounts Accounts
	profiles Profiles
}

func NewService(accounts Accounts, profiles Profiles) *Service {
	return &Service{accounts: accounts, profiles: profiles}
}

// Merge combines the two sources field by field. A non-empty table value
// wins, then the metadata value, then "".
func Merge(acc *model.Account, row *model.Profile) Data {
	meta := map[string]string{}
	email := ""
	if acc != nil {
		if acc.Metadata != nil {
			meta = acc.Metadata
		}
		email = acc.Email
	}
	if row == nil {
		row = &model.Profile{}
	}
	pick := func(table string, metaKey string) string {
		if table != "" {
			return table
		}
		return meta[metaKey]
	}
	out := Data{
		Email:          pick(row.Email, "email"),
		FullName:       pick(row.FullName, "fullName"),
		Phone:          pick(row.Phone, "phone"),
		Address:        pick(row.Address, "address"),
		FacebookURL:    pick(row.FacebookURL, "facebookUrl"),
		InstagramURL:   pick(row.InstagramURL, "instagramUrl"),
		TwitterURL:     pick(row.TwitterURL, "twitterUrl"),
		TripadvisorURL: pick(row.TripadvisorURL, "tripadvisorUrl"),
	}
	if out.Email == "" {
		out.Email = email
	}
	return out
}

func (s *Service) Load(ctx context.Context, accountID uint) (Data, error) {
	acc, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return Data{}, err
	}
	row, err := s.profiles.FindByUser(ctx, accountID)
	if err != nil {
		return Data{}, err
	}
	return Merge(acc, row), nil
}

// Save writes the account metadata first and the profile row second. If the
// second step fails the previous metadata is put back. ErrPartialSave is
// returned when that also fails.
func (s *Service) Save(ctx context.Context, accountID uint, d Data) (Result, error) {
	var res Result
	acc, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return res, err
	}
	prevEmail := acc.Email
	prevMeta := maps.Clone(acc.Metadata)

	meta := maps.Clone(acc.Metadata)
	if meta == nil {
		meta = map[string]string{}
	}
	maps.Copy(meta, d.metadata())

	if err := s.accounts.UpdateMetadata(ctx, accountID, d.Email, meta); err != nil {
		return res, fmt.Errorf("save account metadata: %w", err)
	}
	res.AuthSaved = true

	row := &model.Profile{
		UserID:         accountID,
		Email:          d.Email,
		FullName:       d.FullName,
		Phone:          d.Phone,
		Address:        d.Address,
		FacebookURL:    d.FacebookURL,
		InstagramURL:   d.InstagramURL,
		TwitterURL:     d.TwitterURL,
		TripadvisorURL: d.TripadvisorURL,
	}
	if err := s.profiles.Upsert(ctx, row); err != nil {
		log.Printf("[profile] profile row for account %d failed, restoring metadata: %v", accountID, err)
		if rbErr := s.accounts.UpdateMetadata(ctx, accountID, prevEmail, prevMeta); rbErr != nil {
			log.Printf("[profile] restoring metadata for account %d failed: %v", accountID, rbErr)
			return res, fmt.Errorf("%w: %v", ErrPartialSave, err)
		}
		res.AuthSaved = false
		res.RolledBack = true
		return res, fmt.Errorf("save profile row: %w", err)
	}
	res.ProfileSaved = true
	return res, nil
}

func (d Data) metadata() map[string]string {
	return map[string]string{
		"email":          d.Email,
		"fullName":       d.FullName,
		"phone":          d.Phone,
		"address":        d.Address,
		"facebookUrl":    d.FacebookURL,
		"instagramUrl":   d.InstagramURL,
		"twitterUrl":     d.TwitterURL,
		"tripadvisorUrl": d.TripadvisorURL,
	}
}
