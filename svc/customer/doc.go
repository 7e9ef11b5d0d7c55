// Package customer owns the customer record: registration, credential checks,
// the admin listing and the per-customer dashboard text.
//
// Records are persisted through a Repository. NewRepository returns the gorm
// implementation, which works on postgres in production and sqlite in tests:
//
//	db, _ := pg.Gorm(pool)
//	svc := customer.NewService(customer.NewRepository(db), auth.NewPasswordHasher())
//
//	profile, err := svc.Register(ctx, customer.RegisterInput{Name: "Bob", Email: "bob@example.com"})
//	if errors.Is(err, customer.ErrDuplicateEmail) {
//		// 409
//	}
//
// The password hash never leaves this package: every value returned by the
// Service is a Profile or a Dashboard.
package customer
