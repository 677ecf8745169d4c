package datasupply

import (
	"database/sql"
	"fmt"

	"pawsuite_backend/internal/models"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// OpenPostgres opens and pings a PostgreSQL connection pool.
func OpenPostgres(host, port, user, password, dbname, sslmode string) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return db, nil
}

// PostgresSupplier loads raw records from the operational database. It reads
// rows as stored, without interpretation: all repair and derivation is the
// normalizer's job.
type PostgresSupplier struct {
	db *sql.DB
}

// NewPostgresSupplier creates a supplier over an open connection pool.
func NewPostgresSupplier(db *sql.DB) *PostgresSupplier {
	return &PostgresSupplier{db: db}
}

// FetchRaw loads every raw collection.
func (p *PostgresSupplier) FetchRaw() (models.RawRecords, error) {
	var raw models.RawRecords
	var err error

	if raw.Appointments, err = p.fetchAppointments(); err != nil {
		return models.RawRecords{}, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	if raw.Transactions, err = p.fetchTransactions(); err != nil {
		return models.RawRecords{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	if raw.Clients, err = p.fetchClients(); err != nil {
		return models.RawRecords{}, fmt.Errorf("failed to fetch clients: %w", err)
	}
	if raw.Staff, err = p.fetchStaff(); err != nil {
		return models.RawRecords{}, fmt.Errorf("failed to fetch staff: %w", err)
	}
	if raw.Inventory, err = p.fetchInventory(); err != nil {
		return models.RawRecords{}, fmt.Errorf("failed to fetch inventory: %w", err)
	}
	if raw.Messages, err = p.fetchMessages(); err != nil {
		return models.RawRecords{}, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return raw, nil
}

func (p *PostgresSupplier) fetchAppointments() ([]models.RawAppointment, error) {
	rows, err := p.db.Query(`
		SELECT id, client_id, pet_name, pet_weight_lbs, groomer_id,
		       to_char(appointment_date, 'YYYY-MM-DD'),
		       to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		       total_price, status, to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		FROM appointments
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []models.RawAppointment
	for rows.Next() {
		var a models.RawAppointment
		var clientID, groomerID, createdAt sql.NullString
		if err := rows.Scan(
			&a.ID, &clientID, &a.PetName, &a.PetWeightLbs, &groomerID,
			&a.Date, &a.StartTime, &a.EndTime, &a.TotalPrice, &a.Status, &createdAt,
		); err != nil {
			return nil, err
		}
		a.ClientID = clientID.String
		a.GroomerID = groomerID.String
		a.CreatedAt = createdAt.String
		if a.Services, err = p.fetchAppointmentServices(a.ID); err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func (p *PostgresSupplier) fetchAppointmentServices(appointmentID string) ([]models.RawServiceItem, error) {
	rows, err := p.db.Query(`
		SELECT service_id, name, price, role
		FROM appointment_services
		WHERE appointment_id = $1
		ORDER BY position`, appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []models.RawServiceItem
	for rows.Next() {
		var s models.RawServiceItem
		if err := rows.Scan(&s.ServiceID, &s.Name, &s.Price, &s.Role); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (p *PostgresSupplier) fetchTransactions() ([]models.RawTransaction, error) {
	rows, err := p.db.Query(`
		SELECT id, appointment_id, client_id, to_char(transaction_date, 'YYYY-MM-DD'),
		       subtotal, discount, additional_fees, tax, total, tip, refund,
		       payment_method, status, type
		FROM transactions
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.RawTransaction
	for rows.Next() {
		var t models.RawTransaction
		var appointmentID, clientID, paymentMethod sql.NullString
		if err := rows.Scan(
			&t.ID, &appointmentID, &clientID, &t.Date,
			&t.Subtotal, &t.Discount, &t.AdditionalFees, &t.Tax, &t.Total, &t.Tip, &t.Refund,
			&paymentMethod, &t.Status, &t.Type,
		); err != nil {
			return nil, err
		}
		t.AppointmentID = appointmentID.String
		t.ClientID = clientID.String
		t.PaymentMethod = paymentMethod.String
		if t.Items, err = p.fetchTransactionItems(t.ID); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (p *PostgresSupplier) fetchTransactionItems(transactionID string) ([]models.RawLineItem, error) {
	rows, err := p.db.Query(`
		SELECT id, name, kind, quantity, unit_price, total
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY position`, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.RawLineItem
	for rows.Next() {
		var item models.RawLineItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Kind, &item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (p *PostgresSupplier) fetchClients() ([]models.RawClient, error) {
	rows, err := p.db.Query(`
		SELECT id, full_name, phone, email, to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		FROM clients
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.RawClient
	for rows.Next() {
		var c models.RawClient
		var phone, email, createdAt sql.NullString
		if err := rows.Scan(&c.ID, &c.FullName, &phone, &email, &createdAt); err != nil {
			return nil, err
		}
		c.Phone = phone.String
		c.Email = email.String
		c.CreatedAt = createdAt.String
		if c.Pets, err = p.fetchPets(c.ID); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (p *PostgresSupplier) fetchPets(clientID string) ([]models.RawPet, error) {
	rows, err := p.db.Query(`
		SELECT name, weight_lbs
		FROM pets
		WHERE client_id = $1
		ORDER BY name`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []models.RawPet
	for rows.Next() {
		var pet models.RawPet
		if err := rows.Scan(&pet.Name, &pet.WeightLbs); err != nil {
			return nil, err
		}
		pets = append(pets, pet)
	}
	return pets, rows.Err()
}

func (p *PostgresSupplier) fetchStaff() ([]models.RawStaffMember, error) {
	rows, err := p.db.Query(`
		SELECT id, full_name, role, phone, email, active, is_groomer
		FROM staff
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []models.RawStaffMember
	for rows.Next() {
		var s models.RawStaffMember
		var phone, email sql.NullString
		if err := rows.Scan(&s.ID, &s.FullName, &s.Role, &phone, &email, &s.Active, &s.IsGroomer); err != nil {
			return nil, err
		}
		s.Phone = phone.String
		s.Email = email.String
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

func (p *PostgresSupplier) fetchInventory() ([]models.RawInventoryItem, error) {
	rows, err := p.db.Query(`
		SELECT id, name, category, sku, quantity_on_hand, unit_price, unit_cost, reorder_threshold
		FROM inventory_items
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.RawInventoryItem
	for rows.Next() {
		var item models.RawInventoryItem
		var sku sql.NullString
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Category, &sku,
			&item.QuantityOnHand, &item.UnitPrice, &item.UnitCost, &item.ReorderThreshold,
		); err != nil {
			return nil, err
		}
		item.SKU = sku.String
		items = append(items, item)
	}
	return items, rows.Err()
}

func (p *PostgresSupplier) fetchMessages() ([]models.RawMessage, error) {
	rows, err := p.db.Query(`
		SELECT id, client_id, to_char(sent_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'), body
		FROM messages
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.RawMessage
	for rows.Next() {
		var m models.RawMessage
		var clientID, body sql.NullString
		if err := rows.Scan(&m.ID, &clientID, &m.SentAt, &body); err != nil {
			return nil, err
		}
		m.ClientID = clientID.String
		m.Body = body.String
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
