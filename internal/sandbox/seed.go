package sandbox

import (
	"time"

	"github.com/google/uuid"
	"github.com/productbazar/bazaaradmin/internal/roles"
	"gorm.io/gorm"
)

const SeedAdminEmail = "admin@productbazar.local"

func seedUsers(now time.Time) []User {
	day := 24 * time.Hour
	return []User{
		{FirstName: "Ada", LastName: "Admin", Email: SeedAdminEmail, IsEmailVerified: true,
			Role: roles.Admin, City: "London", Country: "UK", IsProfileCompleted: true, CreatedAt: now.Add(-400 * day)},
		{FirstName: "Jane", LastName: "Doe", Email: "jane@acme.io", Phone: "+14155550101", IsEmailVerified: true,
			Role: roles.StartupOwner, SecondaryRoles: RoleList{roles.Maker}, CompanyName: "Acme",
			City: "San Francisco", Country: "USA", IsProfileCompleted: true, CreatedAt: now.Add(-120 * day)},
		{FirstName: "John", LastName: "Smith", Email: "john@ventures.vc", Role: roles.Investor,
			CompanyName: "Smith Ventures", City: "New York", Country: "USA", CreatedAt: now.Add(-90 * day)},
		{FirstName: "Priya", LastName: "Patel", Email: "priya@studio.dev", Phone: "+919800000001", IsPhoneVerified: true,
			Role: roles.Agency, SecondaryRoles: RoleList{roles.Freelancer}, CompanyName: "Pixel Studio",
			City: "Bangalore", Country: "India", IsProfileCompleted: true, CreatedAt: now.Add(-45 * day)},
		{FirstName: "Lukas", LastName: "Becker", Email: "lukas@freelance.de", Role: roles.Freelancer,
			City: "Berlin", Country: "Germany", CreatedAt: now.Add(-30 * day)},
		{FirstName: "Maria", LastName: "Garcia", Email: "maria@mail.es", Role: roles.Jobseeker,
			City: "Madrid", Country: "Spain", CreatedAt: now.Add(-12 * day)},
		{Email: "maker@tools.io", Role: roles.Maker, ProfilePictureURL: "https://cdn.productbazar.io/avatars/maker.png",
			CreatedAt: now.Add(-5 * day)},
		{Phone: "+447700900123", Role: roles.User, CreatedAt: now.Add(-2 * day)},
		{FirstName: "Sam", LastName: "Lee", Email: "sam@mod.team", Role: roles.User,
			SecondaryRoles: RoleList{roles.Admin}, City: "Toronto", Country: "Canada", CreatedAt: now.Add(-200 * day)},
	}
}

// Seed inserts the demo users into an empty table and returns how many were
// created.
func Seed(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	users := seedUsers(time.Now().UTC())
	for i := range users {
		users[i].ID = seedID(users[i])
	}
	if err := db.Create(&users).Error; err != nil {
		return 0, err
	}
	return len(users), nil
}

// seedID derives a stable id from the contact details so separate sandbox
// processes agree on who is who.
func seedID(u User) string {
	key := u.Email
	if key == "" {
		key = u.Phone
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("productbazar:"+key)).String()
}
