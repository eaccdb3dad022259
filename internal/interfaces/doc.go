// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - AuthorStore: Author persistence (internal/library/store.go)
//   - BookStore: Book persistence (internal/library/store.go)
//
// Both are implemented by the gorm repositories under internal/database and
// mocked with mockgen in internal/library/mocks for service tests.
//
// ## Service Interfaces
//
//   - AuthorService: Author use cases consumed by controllers (internal/http/stores.go)
//   - BookService: Book use cases consumed by controllers (internal/http/stores.go)
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., publishers):
//
//  1. Create sub-package: internal/database/publishers/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface next to the service in internal/library
//     and add it to the go:generate line in store.go
//
//  4. Add compile-time check:
//
//     var _ library.PublisherStore = (*publishers.Repository)(nil)
//
//  5. Add a SQL migration pair per driver under internal/database/migrations
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
