package sandbox

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/productbazar/bazaaradmin/internal/roles"
	"gorm.io/gorm"
)

type Claims struct {
	UserID string     `json:"userID"`
	Email  string     `json:"email"`
	Role   roles.Role `json:"role"`
	jwt.RegisteredClaims
}

// Tokens signs and validates HS256 bearer tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(cfg JWTConfig) *Tokens {
	secret := cfg.Secret
	if secret == "" {
		secret = "change-me-in-production"
	}
	hours := cfg.ExpirationHours
	if hours <= 0 {
		hours = 24
	}
	return &Tokens{secret: []byte(secret), ttl: time.Duration(hours) * time.Hour}
}

func (t *Tokens) Generate(user *User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

var ErrUserNotFound = errors.New("user not found")

// IssueFor mints a token for the user with the given email, or for the first
// admin when email is empty.
func IssueFor(db *gorm.DB, tokens *Tokens, email string) (string, *User, error) {
	var user User
	var err error
	if email != "" {
		err = db.First(&user, "email = ?", email).Error
	} else {
		err = db.Where("role = ?", roles.Admin).Order("created_at ASC").First(&user).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrUserNotFound
	}
	if err != nil {
		return "", nil, err
	}

	token, err := tokens.Generate(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}
