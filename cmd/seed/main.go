package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicScheduler/internal/config"
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/psqlbuilder"
)

// Seeder заполняет базу тестовыми данными: расписания клиник,
// праздники и записи на ближайшие рабочие дни.
// Не трогает продовые таблицы - предполагается запуск на локальной базе.

const (
	clinicCount            = 3
	practitionersPerClinic = 4
	patientsPool           = 200
	daysAhead              = 14
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg, err := config.Load("config.toml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	for clinicID := int64(1); clinicID <= clinicCount; clinicID++ {
		if err := seedSchedule(db, clinicID); err != nil {
			log.Fatalf("seed schedule for clinic %d: %v", clinicID, err)
		}
		if err := seedHolidays(db, clinicID); err != nil {
			log.Fatalf("seed holidays for clinic %d: %v", clinicID, err)
		}
		if err := seedAppointments(db, clinicID); err != nil {
			log.Fatalf("seed appointments for clinic %d: %v", clinicID, err)
		}
	}

	log.Println("seed complete")
}

// seedSchedule настраивает недельное расписание клиники:
// будни 08:00-18:00, суббота 09:00-14:00, воскресенье выходной.
func seedSchedule(db *sql.DB, clinicID int64) error {
	log.Printf("seeding schedule: clinic_id=%d", clinicID)

	if _, err := db.Exec("DELETE FROM clinic_working_hours WHERE clinic_id = $1", clinicID); err != nil {
		return err
	}

	builder := psqlbuilder.Insert("clinic_working_hours").
		Columns("clinic_id", "weekday", "start_time", "end_time", "is_working_day")

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		switch weekday {
		case time.Sunday:
			builder = builder.Values(clinicID, int(weekday), nil, nil, false)
		case time.Saturday:
			builder = builder.Values(clinicID, int(weekday), "09:00", "14:00", true)
		default:
			builder = builder.Values(clinicID, int(weekday), "08:00", "18:00", true)
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = db.Exec(query, args...)
	return err
}

// seedHolidays добавляет пару закрытий клиники: одно разовое, одно ежегодное
func seedHolidays(db *sql.DB, clinicID int64) error {
	log.Printf("seeding holidays: clinic_id=%d", clinicID)

	if _, err := db.Exec("DELETE FROM clinic_holidays WHERE clinic_id = $1", clinicID); err != nil {
		return err
	}

	oneOff := time.Now().AddDate(0, 1, gofakeit.Number(0, 20)).Format(domain.DateFormat)

	query, args, err := psqlbuilder.Insert("clinic_holidays").
		Columns("clinic_id", "holiday_date", "name", "is_recurring").
		Values(clinicID, oneOff, "Staff training day", false).
		Values(clinicID, "07-15", "Founders day", true).
		ToSql()
	if err != nil {
		return err
	}

	_, err = db.Exec(query, args...)
	return err
}

// seedAppointments раскладывает записи по рабочим дням вперед.
// Слоты внутри дня не пересекаются по врачу - шаг сетки 60 минут.
func seedAppointments(db *sql.DB, clinicID int64) error {
	log.Printf("seeding appointments: clinic_id=%d", clinicID)

	procedures := domain.KnownProcedureTypes
	rules := domain.DefaultDurationRules()

	builder := psqlbuilder.Insert("appointments").
		Columns(
			"patient_id",
			"practitioner_id",
			"clinic_id",
			"appointment_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"procedure_type",
			"status",
			"notes",
		)

	total := 0
	for dayOffset := 1; dayOffset <= daysAhead; dayOffset++ {
		date := time.Now().AddDate(0, 0, dayOffset)
		if date.Weekday() == time.Sunday {
			continue
		}

		for p := 0; p < practitionersPerClinic; p++ {
			practitionerID := clinicID*100 + int64(p+1)

			// Каждому врачу - несколько часовых слотов начиная с 09:00.
			slots := gofakeit.Number(2, 5)
			for slot := 0; slot < slots; slot++ {
				startHour := 9 + slot
				procedure := procedures[gofakeit.Number(0, len(procedures)-1)]
				duration := rules[procedure].DefaultMinutes
				if duration > 60 {
					duration = 60
				}

				startTime := fmt.Sprintf("%02d:00", startHour)
				endTime := fmt.Sprintf("%02d:%02d", startHour+duration/60, duration%60)

				var notes *string
				if gofakeit.Bool() {
					sentence := gofakeit.Sentence(6)
					notes = &sentence
				}

				builder = builder.Values(
					int64(gofakeit.Number(1, patientsPool)),
					practitionerID,
					clinicID,
					date.Format(domain.DateFormat),
					startTime,
					endTime,
					duration,
					string(procedure),
					string(domain.StatusScheduled),
					notes,
				)
				total++
			}
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	if _, err := db.Exec(query, args...); err != nil {
		return err
	}

	log.Printf("appointments seeded: clinic_id=%d, count=%d", clinicID, total)
	return nil
}
