package config

import (
	"log"

	"github.com/google/uuid"

	"kgtk-simpanse/internal/adapters/persistence/repositories"
	"kgtk-simpanse/internal/core/domain"
	"kgtk-simpanse/internal/pkg/password"
)

// Seeder populates an empty store with the default catalog, staff accounts
// and branding so a fresh deployment is usable immediately.
type Seeder struct {
	state *repositories.State
}

// NewSeeder creates a new seeder instance
func NewSeeder(state *repositories.State) *Seeder {
	return &Seeder{state: state}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running seeders...")

	if err := s.seedUsers(); err != nil {
		return err
	}
	if err := s.seedItems(); err != nil {
		return err
	}
	if err := s.seedConfig(); err != nil {
		return err
	}

	log.Println("✅ Seeding completed")
	return nil
}

// seedUsers seeds the default staff accounts.
// These are development credentials; rotate them before going live.
func (s *Seeder) seedUsers() error {
	seeded := false
	err := s.state.Update(func(d *repositories.Data) error {
		if len(d.Users) > 0 {
			return nil
		}
		defaults := []struct {
			name, username, email, plain string
			role                         domain.Role
		}{
			{"Admin Utama", "admin", "admin@simpanse.id", "admin123", domain.RoleAdmin},
			{"Tim Verifikasi", "verify", "verify@simpanse.id", "verify123", domain.RoleVerificator},
			{"Super Admin", "super", "super@simpanse.id", "super123", domain.RoleSuperAdmin},
		}
		for _, def := range defaults {
			hash, err := password.Hash(def.plain)
			if err != nil {
				return err
			}
			d.Users = append(d.Users, domain.UserAccount{
				ID:       uuid.New().String(),
				Name:     def.name,
				Username: def.username,
				Email:    def.email,
				Role:     def.role,
				Password: hash,
			})
		}
		seeded = true
		return nil
	})
	if err != nil {
		return err
	}
	if seeded {
		log.Println("✅ Default staff accounts created (admin/verify/super)")
	}
	return nil
}

// seedItems seeds the initial catalog.
func (s *Seeder) seedItems() error {
	seeded := false
	err := s.state.Update(func(d *repositories.Data) error {
		if len(d.Items) > 0 {
			return nil
		}
		defaults := []domain.Item{
			{Name: "Proyektor Epson EB-X500", Category: "Elektronik", TotalQuantity: 5, AvailableQuantity: 5},
			{Name: "Kamera DSLR Canon 1500D", Category: "Elektronik", TotalQuantity: 3, AvailableQuantity: 3},
			{Name: "Sound System Portable", Category: "Elektronik", TotalQuantity: 2, AvailableQuantity: 2},
			{Name: "Kursi Lipat", Category: "Perlengkapan", TotalQuantity: 100, AvailableQuantity: 100},
			{Name: "Tenda Kegiatan 4x6", Category: "Perlengkapan", TotalQuantity: 4, AvailableQuantity: 4},
		}
		for _, item := range defaults {
			item.ID = uuid.New().String()
			item.RecomputeStatus()
			d.Items = append(d.Items, item)
		}
		seeded = true
		return nil
	})
	if err != nil {
		return err
	}
	if seeded {
		log.Println("✅ Initial catalog created")
	}
	return nil
}

// seedConfig seeds the default branding.
func (s *Seeder) seedConfig() error {
	return s.state.Update(func(d *repositories.Data) error {
		if d.Config.AppName != "" {
			return nil
		}
		d.Config = domain.SystemConfig{
			AppName:          "SIMPANSE",
			LogoURL:          "https://cdn-icons-png.flaticon.com/512/2619/2619018.png",
			SecondaryLogoURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/9/9c/Logo_of_the_Ministry_of_Education_and_Culture_of_the_Republic_of_Indonesia.svg/1200px-Logo_of_the_Ministry_of_Education_and_Culture_of_the_Republic_of_Indonesia.svg.png",
			ContactPhone:     "082292313876",
			ContactEmail:     "kgtkmalut@gmail.com",
			ContactWebsite:   "https://kgtkmalut.id",
			SocialFB:         "https://facebook.com/kantorgtkmalt",
			SocialIG:         "https://instagram.com/kgtk_malut",
			SocialYT:         "https://youtube.com/@KGTKMalukuUtara",
			Sliders: []domain.Slider{
				{ID: "s1", URL: "https://images.unsplash.com/photo-1497215728101-856f4ea42174?auto=format&fit=crop&q=80&w=1920&h=700", Title: "Manajemen Aset Digital", Transition: "fade"},
				{ID: "s2", URL: "https://images.unsplash.com/photo-1554118811-1e0d58224f24?auto=format&fit=crop&q=80&w=1920&h=700", Title: "Kemudahan Peminjaman", Transition: "zoom"},
			},
		}
		return nil
	})
}
