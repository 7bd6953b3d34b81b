// Package store is the Postgres persistence layer. Order documents keep
// their nested parts (customer, story, files, shipping, activity log) as
// JSONB columns; directory and ledger tables are plain relational rows.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(connectionString string) (*Store, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const orderColumns = `id, status, customer, story, price, reference_images, final_pdf, cover_image,
		created_at, created_by, assigned_to_designer, assigned_to_printer,
		international_shipping, domestic_shipping, delivery_date, activity_log`

func (s *Store) InsertOrder(order *models.Order) error {
	customer, story, refs, pdf, cover, intl, dom, log, err := marshalOrderDocs(order)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, order.ID, order.Status, customer, story, order.Price, refs, pdf, cover,
		order.CreatedAt, order.CreatedBy, order.AssignedToDesigner, order.AssignedToPrinter,
		intl, dom, order.DeliveryDate, log)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", translateErr(err))
	}
	return nil
}

func (s *Store) UpdateOrder(order *models.Order) error {
	customer, story, refs, pdf, cover, intl, dom, log, err := marshalOrderDocs(order)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE orders
		SET status = $2, customer = $3, story = $4, price = $5, reference_images = $6,
			final_pdf = $7, cover_image = $8, assigned_to_designer = $9, assigned_to_printer = $10,
			international_shipping = $11, domestic_shipping = $12, delivery_date = $13, activity_log = $14
		WHERE id = $1
	`, order.ID, order.Status, customer, story, order.Price, refs, pdf, cover,
		order.AssignedToDesigner, order.AssignedToPrinter, intl, dom, order.DeliveryDate, log)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", translateErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %s: %w", order.ID, models.ErrNotFound)
	}
	return nil
}

func (s *Store) GetOrder(id uuid.UUID) (*models.Order, error) {
	row := s.db.QueryRow(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", translateErr(err))
	}
	return order, nil
}

func (s *Store) ListOrders() ([]models.Order, error) {
	rows, err := s.db.Query(`
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (s *Store) DeleteOrder(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	return nil
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row scannable) (*models.Order, error) {
	var (
		order                 models.Order
		customer, story, refs []byte
		pdf, cover, intl, dom []byte
		log                   []byte
	)
	err := row.Scan(
		&order.ID, &order.Status, &customer, &story, &order.Price, &refs, &pdf, &cover,
		&order.CreatedAt, &order.CreatedBy, &order.AssignedToDesigner, &order.AssignedToPrinter,
		&intl, &dom, &order.DeliveryDate, &log,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(customer, &order.Customer); err != nil {
		return nil, fmt.Errorf("failed to decode customer: %w", err)
	}
	if err := json.Unmarshal(story, &order.Story); err != nil {
		return nil, fmt.Errorf("failed to decode story: %w", err)
	}
	if err := json.Unmarshal(refs, &order.ReferenceImages); err != nil {
		return nil, fmt.Errorf("failed to decode reference images: %w", err)
	}
	if err := json.Unmarshal(log, &order.ActivityLog); err != nil {
		return nil, fmt.Errorf("failed to decode activity log: %w", err)
	}
	if pdf != nil {
		if err := json.Unmarshal(pdf, &order.FinalPDF); err != nil {
			return nil, fmt.Errorf("failed to decode final pdf: %w", err)
		}
	}
	if cover != nil {
		if err := json.Unmarshal(cover, &order.CoverImage); err != nil {
			return nil, fmt.Errorf("failed to decode cover image: %w", err)
		}
	}
	if intl != nil {
		if err := json.Unmarshal(intl, &order.InternationalShippingInfo); err != nil {
			return nil, fmt.Errorf("failed to decode international shipping: %w", err)
		}
	}
	if dom != nil {
		if err := json.Unmarshal(dom, &order.DomesticShippingInfo); err != nil {
			return nil, fmt.Errorf("failed to decode domestic shipping: %w", err)
		}
	}
	return &order, nil
}

func marshalOrderDocs(order *models.Order) (customer, story, refs, pdf, cover, intl, dom, log []byte, err error) {
	if customer, err = json.Marshal(order.Customer); err != nil {
		return
	}
	if story, err = json.Marshal(order.Story); err != nil {
		return
	}
	if order.ReferenceImages == nil {
		order.ReferenceImages = []models.FileRef{}
	}
	if refs, err = json.Marshal(order.ReferenceImages); err != nil {
		return
	}
	if order.ActivityLog == nil {
		order.ActivityLog = []models.ActivityLogEntry{}
	}
	if log, err = json.Marshal(order.ActivityLog); err != nil {
		return
	}
	if order.FinalPDF != nil {
		if pdf, err = json.Marshal(order.FinalPDF); err != nil {
			return
		}
	}
	if order.CoverImage != nil {
		if cover, err = json.Marshal(order.CoverImage); err != nil {
			return
		}
	}
	if order.InternationalShippingInfo != nil {
		if intl, err = json.Marshal(order.InternationalShippingInfo); err != nil {
			return
		}
	}
	if order.DomesticShippingInfo != nil {
		if dom, err = json.Marshal(order.DomesticShippingInfo); err != nil {
			return
		}
	}
	return
}

// --- users ---

const userColumns = `id, name, email, phone, role, hourly_rate, story_rate, password_hash`

func (s *Store) CreateUser(user *models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, user.ID, user.Name, user.Email, user.Phone, user.Role,
		user.HourlyRate, user.StoryRate, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", translateErr(err))
	}
	return nil
}

func (s *Store) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(`
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.Role,
		&user.HourlyRate, &user.StoryRate, &user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", translateErr(err))
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(`
		SELECT `+userColumns+`
		FROM users
		WHERE lower(email) = lower($1)
	`, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.Role,
		&user.HourlyRate, &user.StoryRate, &user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", translateErr(err))
	}
	return &user, nil
}

func (s *Store) ListUsers(role models.UserRole) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name`
	args := []interface{}{}
	if role != "" {
		query = `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY name`
		args = append(args, role)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.Phone, &user.Role,
			&user.HourlyRate, &user.StoryRate, &user.PasswordHash,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *Store) UpdateUserProfile(id uuid.UUID, name, phone, passwordHash string) error {
	res, err := s.db.Exec(`
		UPDATE users
		SET name = $2, phone = $3, password_hash = $4
		WHERE id = $1
	`, id, name, phone, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", translateErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *Store) SetUserHourlyRate(id uuid.UUID, rate float64) error {
	return s.setUserRate(id, "hourly_rate", rate)
}

func (s *Store) SetUserStoryRate(id uuid.UUID, rate float64) error {
	return s.setUserRate(id, "story_rate", rate)
}

func (s *Store) setUserRate(id uuid.UUID, column string, rate float64) error {
	res, err := s.db.Exec(`UPDATE users SET `+column+` = $2 WHERE id = $1`, id, rate)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", column, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteUser(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", translateErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// --- printers ---

func (s *Store) CreatePrinter(printer *models.Printer) error {
	_, err := s.db.Exec(`
		INSERT INTO printers (id, name, story_rate)
		VALUES ($1, $2, $3)
	`, printer.ID, printer.Name, printer.StoryRate)
	if err != nil {
		return fmt.Errorf("failed to create printer: %w", translateErr(err))
	}
	return nil
}

func (s *Store) GetPrinter(id uuid.UUID) (*models.Printer, error) {
	var printer models.Printer
	err := s.db.QueryRow(`
		SELECT id, name, story_rate
		FROM printers
		WHERE id = $1
	`, id).Scan(&printer.ID, &printer.Name, &printer.StoryRate)
	if err != nil {
		return nil, fmt.Errorf("failed to get printer: %w", translateErr(err))
	}
	return &printer, nil
}

func (s *Store) ListPrinters() ([]models.Printer, error) {
	rows, err := s.db.Query(`SELECT id, name, story_rate FROM printers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list printers: %w", err)
	}
	defer rows.Close()

	var printers []models.Printer
	for rows.Next() {
		var printer models.Printer
		if err := rows.Scan(&printer.ID, &printer.Name, &printer.StoryRate); err != nil {
			return nil, fmt.Errorf("failed to scan printer: %w", err)
		}
		printers = append(printers, printer)
	}
	return printers, rows.Err()
}

func (s *Store) SetPrinterStoryRate(id uuid.UUID, rate float64) error {
	res, err := s.db.Exec(`UPDATE printers SET story_rate = $2 WHERE id = $1`, id, rate)
	if err != nil {
		return fmt.Errorf("failed to set printer story rate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("printer %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *Store) DeletePrinter(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM printers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete printer: %w", translateErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("printer %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// --- shipping companies ---

func (s *Store) CreateShippingCompany(company *models.ShippingCompany) error {
	_, err := s.db.Exec(`
		INSERT INTO shipping_companies (id, name, type)
		VALUES ($1, $2, $3)
	`, company.ID, company.Name, company.Type)
	if err != nil {
		return fmt.Errorf("failed to create shipping company: %w", translateErr(err))
	}
	return nil
}

func (s *Store) GetShippingCompany(id uuid.UUID) (*models.ShippingCompany, error) {
	var company models.ShippingCompany
	err := s.db.QueryRow(`
		SELECT id, name, type
		FROM shipping_companies
		WHERE id = $1
	`, id).Scan(&company.ID, &company.Name, &company.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to get shipping company: %w", translateErr(err))
	}
	return &company, nil
}

func (s *Store) ListShippingCompanies(shippingType models.ShippingType) ([]models.ShippingCompany, error) {
	query := `SELECT id, name, type FROM shipping_companies ORDER BY name`
	args := []interface{}{}
	if shippingType != "" {
		query = `SELECT id, name, type FROM shipping_companies WHERE type = $1 ORDER BY name`
		args = append(args, shippingType)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping companies: %w", err)
	}
	defer rows.Close()

	var companies []models.ShippingCompany
	for rows.Next() {
		var company models.ShippingCompany
		if err := rows.Scan(&company.ID, &company.Name, &company.Type); err != nil {
			return nil, fmt.Errorf("failed to scan shipping company: %w", err)
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

func (s *Store) DeleteShippingCompany(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM shipping_companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shipping company: %w", translateErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("shipping company %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// --- ledger ---

func (s *Store) InsertHoursLog(log *models.HoursLog) error {
	_, err := s.db.Exec(`
		INSERT INTO hours_logs (id, user_id, hours, rate, date)
		VALUES ($1, $2, $3, $4, $5)
	`, log.ID, log.UserID, log.Hours, log.Rate, log.Date)
	if err != nil {
		return fmt.Errorf("failed to insert hours log: %w", translateErr(err))
	}
	return nil
}

func (s *Store) ListHoursLogs(userID uuid.UUID) ([]models.HoursLog, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, hours, rate, date
		FROM hours_logs
		WHERE user_id = $1
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hours logs: %w", err)
	}
	defer rows.Close()

	var logs []models.HoursLog
	for rows.Next() {
		var log models.HoursLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.Hours, &log.Rate, &log.Date); err != nil {
			return nil, fmt.Errorf("failed to scan hours log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (s *Store) InsertBonus(bonus *models.Bonus) error {
	_, err := s.db.Exec(`
		INSERT INTO bonuses (id, user_id, amount, date, notes)
		VALUES ($1, $2, $3, $4, $5)
	`, bonus.ID, bonus.UserID, bonus.Amount, bonus.Date, bonus.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert bonus: %w", translateErr(err))
	}
	return nil
}

func (s *Store) ListBonuses(userID uuid.UUID) ([]models.Bonus, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, amount, date, notes
		FROM bonuses
		WHERE user_id = $1
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonuses: %w", err)
	}
	defer rows.Close()

	var bonuses []models.Bonus
	for rows.Next() {
		var bonus models.Bonus
		if err := rows.Scan(&bonus.ID, &bonus.UserID, &bonus.Amount, &bonus.Date, &bonus.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan bonus: %w", err)
		}
		bonuses = append(bonuses, bonus)
	}
	return bonuses, rows.Err()
}

func (s *Store) InsertPayment(payment *models.Payment) error {
	_, err := s.db.Exec(`
		INSERT INTO payments (id, user_id, printer_id, amount, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, payment.ID, payment.UserID, payment.PrinterID, payment.Amount, payment.Date, payment.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", translateErr(err))
	}
	return nil
}

func (s *Store) ListUserPayments(userID uuid.UUID) ([]models.Payment, error) {
	return s.listPayments(`user_id`, userID)
}

func (s *Store) ListPrinterPayments(printerID uuid.UUID) ([]models.Payment, error) {
	return s.listPayments(`printer_id`, printerID)
}

func (s *Store) listPayments(column string, id uuid.UUID) ([]models.Payment, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, printer_id, amount, date, notes
		FROM payments
		WHERE `+column+` = $1
		ORDER BY date DESC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var payment models.Payment
		err := rows.Scan(&payment.ID, &payment.UserID, &payment.PrinterID,
			&payment.Amount, &payment.Date, &payment.Notes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// translateErr maps driver errors onto the symbolic categories callers branch
// on. Unique violations become ErrConflict, empty results ErrNotFound.
func translateErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return models.ErrConflict
	}
	return err
}
