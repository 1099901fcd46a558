package auth

import (
	"context"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

// Identity is the resolved caller: token claims backed by a stored user record.
type Identity struct {
	UserID  string      `json:"user_id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Role    models.Role `json:"role"`
	Country string      `json:"country"`
	Phone   *string     `json:"phone,omitempty"`
}

// Resolver turns an inbound token into an Identity. Read-only.
type Resolver struct {
	db    *gorm.DB
	codec *Codec
}

func NewResolver(db *gorm.DB, codec *Codec) *Resolver {
	return &Resolver{db: db, codec: codec}
}

// Resolve verifies the token and loads the user it names. A nil Identity
// means the caller is unauthenticated; no distinction is leaked between a
// bad token and a deleted user.
func (r *Resolver) Resolve(ctx context.Context, tokenStr string) *Identity {
	claims := r.codec.Verify(tokenStr)
	if claims == nil || claims.UserID == "" {
		return nil
	}
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil
	}
	return &Identity{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		Country: user.Country,
		Phone:   user.Phone,
	}
}
