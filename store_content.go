package clinicfolio

// Flat content entities share one shape of CRUD: list ordered by
// display_order, create with generated id, full-row update, hard delete.
// Appointments are the exception: append-only ordering by created_at and a
// status column instead of display_order.

// GetProfile returns the single-row practice profile, creating the empty row
// on first read so the public site always has something to render.
func (s *Store) GetProfile() (Profile, error) {
	if _, err := s.db.Exec(`INSERT OR IGNORE INTO profile (id) VALUES (1)`); err != nil {
		return Profile{}, err
	}
	var p Profile
	err := s.db.Get(&p, `SELECT * FROM profile WHERE id = 1`)
	return p, err
}

// SaveProfile overwrites the single profile row.
func (s *Store) SaveProfile(p Profile) error {
	p.ID = 1
	_, err := s.db.NamedExec(`INSERT OR REPLACE INTO profile
		(id, full_name, title, tagline, bio, photo_base64, email, phone, location)
		VALUES (1, :full_name, :title, :tagline, :bio, :photo_base64, :email, :phone, :location)`, p)
	return err
}

// GetContactInfo returns the single-row contact block, creating it if absent.
func (s *Store) GetContactInfo() (ContactInfo, error) {
	if _, err := s.db.Exec(`INSERT OR IGNORE INTO contact (id) VALUES (1)`); err != nil {
		return ContactInfo{}, err
	}
	var c ContactInfo
	err := s.db.Get(&c, `SELECT * FROM contact WHERE id = 1`)
	return c, err
}

// SaveContactInfo overwrites the single contact row.
func (s *Store) SaveContactInfo(c ContactInfo) error {
	c.ID = 1
	_, err := s.db.NamedExec(`INSERT OR REPLACE INTO contact
		(id, email, phone, address, map_embed_url, hours)
		VALUES (1, :email, :phone, :address, :map_embed_url, :hours)`, c)
	return err
}

// --- Services ---

func (s *Store) ListServices() ([]Service, error) {
	out := []Service{}
	err := s.db.Select(&out, `SELECT * FROM services ORDER BY display_order, id`)
	return out, err
}

func (s *Store) GetService(id int64) (Service, error) {
	var v Service
	err := s.db.Get(&v, `SELECT * FROM services WHERE id = ?`, id)
	return v, err
}

func (s *Store) CreateService(v Service) (int64, error) {
	res, err := s.db.NamedExec(`INSERT INTO services (title, description, icon, display_order)
		VALUES (:title, :description, :icon, :display_order)`, v)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) UpdateService(v Service) error {
	_, err := s.db.NamedExec(`UPDATE services SET title = :title, description = :description,
		icon = :icon, display_order = :display_order WHERE id = :id`, v)
	return err
}

func (s *Store) DeleteService(id int64) error {
	_, err := s.db.Exec(`DELETE FROM services WHERE id = ?`, id)
	return err
}

// --- Education ---

func (s *Store) ListEducation() ([]Education, error) {
	out := []Education{}
	err := s.db.Select(&out, `SELECT * FROM education ORDER BY display_order, id`)
	return out, err
}

func (s *Store) GetEducation(id int64) (Education, error) {
	var v Education
	err := s.db.Get(&v, `SELECT * FROM education WHERE id = ?`, id)
	return v, err
}

func (s *Store) CreateEducation(v Education) (int64, error) {
	res, err := s.db.NamedExec(`INSERT INTO education (degree, institution, years, description, display_order)
		VALUES (:degree, :institution, :years, :description, :display_order)`, v)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) UpdateEducation(v Education) error {
	_, err := s.db.NamedExec(`UPDATE education SET degree = :degree, institution = :institution,
		years = :years, description = :description, display_order = :display_order WHERE id = :id`, v)
	return err
}

func (s *Store) DeleteEducation(id int64) error {
	_, err := s.db.Exec(`DELETE FROM education WHERE id = ?`, id)
	return err
}

// --- Experience ---

func (s *Store) ListExperience() ([]Experience, error) {
	out := []Experience{}
	err := s.db.Select(&out, `SELECT * FROM experience ORDER BY display_order, id`)
	return out, err
}

func (s *Store) GetExperience(id int64) (Experience, error) {
	var v Experience
	err := s.db.Get(&v, `SELECT * FROM experience WHERE id = ?`, id)
	return v, err
}

func (s *Store) CreateExperience(v Experience) (int64, error) {
	res, err := s.db.NamedExec(`INSERT INTO experience (role, organization, years, description, display_order)
		VALUES (:role, :organization, :years, :description, :display_order)`, v)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) UpdateExperience(v Experience) error {
	_, err := s.db.NamedExec(`UPDATE experience SET role = :role, organization = :organization,
		years = :years, description = :description, display_order = :display_order WHERE id = :id`, v)
	return err
}

func (s *Store) DeleteExperience(id int64) error {
	_, err := s.db.Exec(`DELETE FROM experience WHERE id = ?`, id)
	return err
}

// --- Skills ---

func (s *Store) ListSkills() ([]Skill, error) {
	out := []Skill{}
	err := s.db.Select(&out, `SELECT * FROM skills ORDER BY display_order, id`)
	return out, err
}

func (s *Store) GetSkill(id int64) (Skill, error) {
	var v Skill
	err := s.db.Get(&v, `SELECT * FROM skills WHERE id = ?`, id)
	return v, err
}

func (s *Store) CreateSkill(v Skill) (int64, error) {
	res, err := s.db.NamedExec(`INSERT INTO skills (name, level, display_order)
		VALUES (:name, :level, :display_order)`, v)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) UpdateSkill(v Skill) error {
	_, err := s.db.NamedExec(`UPDATE skills SET name = :name, level = :level,
		display_order = :display_order WHERE id = :id`, v)
	return err
}

func (s *Store) DeleteSkill(id int64) error {
	_, err := s.db.Exec(`DELETE FROM skills WHERE id = ?`, id)
	return err
}

// --- Awards ---

func (s *Store) ListAwards() ([]Award, error) {
	out := []Award{}
	err := s.db.Select(&out, `SELECT * FROM awards ORDER BY display_order, id`)
	return out, err
}

func (s *Store) GetAward(id int64) (Award, error) {
	var v Award
	err := s.db.Get(&v, `SELECT * FROM awards WHERE id = ?`, id)
	return v, err
}

func (s *Store) CreateAward(v Award) (int64, error) {
	res, err := s.db.NamedExec(`INSERT INTO awards (title, issuer, year, description, display_order)
		VALUES (:title, :issuer, :year, :description, :display_order)`, v)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) UpdateAward(v Award) error {
	_, err := s.db.NamedExec(`UPDATE awards SET title = :title, issuer = :issuer, year = :year,
		description = :description, display_order = :display_order WHERE id = :id`, v)
	return err
}

func (s *Store) DeleteAward(id int64) error {
	_, err := s.db.Exec(`DELETE FROM awards WHERE id = ?`, id)
	return err
}

// --- Portfolio ---

func (s *Store) ListPortfolio() ([]PortfolioItem, error) {
	out := []PortfolioItem{}
	err := s.db.Select(&out, `SELECT * FROM portfolio ORDER BY display_order, id`)
	return out, err
}

func (s *Store) GetPortfolioItem(id int64) (PortfolioItem, error) {
	var v PortfolioItem
	err := s.db.Get(&v, `SELECT * FROM portfolio WHERE id = ?`, id)
	return v, err
}

func (s *Store) CreatePortfolioItem(v PortfolioItem) (int64, error) {
	res, err := s.db.NamedExec(`INSERT INTO portfolio (title, description, image_base64, link, category, display_order)
		VALUES (:title, :description, :image_base64, :link, :category, :display_order)`, v)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) UpdatePortfolioItem(v PortfolioItem) error {
	_, err := s.db.NamedExec(`UPDATE portfolio SET title = :title, description = :description,
		image_base64 = :image_base64, link = :link, category = :category,
		display_order = :display_order WHERE id = :id`, v)
	return err
}

func (s *Store) DeletePortfolioItem(id int64) error {
	_, err := s.db.Exec(`DELETE FROM portfolio WHERE id = ?`, id)
	return err
}

// --- Social links ---

func (s *Store) ListSocialLinks() ([]SocialLink, error) {
	out := []SocialLink{}
	err := s.db.Select(&out, `SELECT * FROM social_links ORDER BY display_order, id`)
	return out, err
}

func (s *Store) GetSocialLink(id int64) (SocialLink, error) {
	var v SocialLink
	err := s.db.Get(&v, `SELECT * FROM social_links WHERE id = ?`, id)
	return v, err
}

func (s *Store) CreateSocialLink(v SocialLink) (int64, error) {
	res, err := s.db.NamedExec(`INSERT INTO social_links (platform, url, display_order)
		VALUES (:platform, :url, :display_order)`, v)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) UpdateSocialLink(v SocialLink) error {
	_, err := s.db.NamedExec(`UPDATE social_links SET platform = :platform, url = :url,
		display_order = :display_order WHERE id = :id`, v)
	return err
}

func (s *Store) DeleteSocialLink(id int64) error {
	_, err := s.db.Exec(`DELETE FROM social_links WHERE id = ?`, id)
	return err
}

// --- Appointments ---

// ListAppointments returns booking requests newest first.
func (s *Store) ListAppointments() ([]Appointment, error) {
	out := []Appointment{}
	err := s.db.Select(&out, `SELECT * FROM appointments ORDER BY created_at DESC, id DESC`)
	return out, err
}

func (s *Store) GetAppointment(id int64) (Appointment, error) {
	var v Appointment
	err := s.db.Get(&v, `SELECT * FROM appointments WHERE id = ?`, id)
	return v, err
}

// CreateAppointment inserts a booking request. Status defaults to "pending"
// and created_at is stamped here, not by the caller.
func (s *Store) CreateAppointment(v Appointment) (int64, error) {
	if v.Status == "" {
		v.Status = "pending"
	}
	v.CreatedAt = nowStamp()
	res, err := s.db.NamedExec(`INSERT INTO appointments (full_name, email, phone, message, preferred_date, status, created_at)
		VALUES (:full_name, :email, :phone, :message, :preferred_date, :status, :created_at)`, v)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) UpdateAppointment(v Appointment) error {
	_, err := s.db.NamedExec(`UPDATE appointments SET full_name = :full_name, email = :email,
		phone = :phone, message = :message, preferred_date = :preferred_date,
		status = :status WHERE id = :id`, v)
	return err
}

func (s *Store) DeleteAppointment(id int64) error {
	_, err := s.db.Exec(`DELETE FROM appointments WHERE id = ?`, id)
	return err
}

// --- Uploads ---

func (s *Store) ListUploads() ([]Upload, error) {
	out := []Upload{}
	err := s.db.Select(&out, `SELECT * FROM uploads ORDER BY uploaded_at DESC`)
	return out, err
}

func (s *Store) SaveUpload(u Upload) error {
	_, err := s.db.NamedExec(`INSERT OR REPLACE INTO uploads
		(filename, original_name, path, width, height, size, uploaded_at)
		VALUES (:filename, :original_name, :path, :width, :height, :size, :uploaded_at)`, u)
	return err
}

func (s *Store) DeleteUpload(filename string) error {
	_, err := s.db.Exec(`DELETE FROM uploads WHERE filename = ?`, filename)
	return err
}
