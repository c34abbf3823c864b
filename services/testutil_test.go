package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"home-services-server/database"
	"home-services-server/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// fixture is a seller with one published service and a client ready to
// order it.
type fixture struct {
	db      *gorm.DB
	seller  models.User
	client  models.User
	service models.HomeService
}

func newFixture(t *testing.T, sellerBalance float64) *fixture {
	t.Helper()
	db := openTestDB(t)

	area := models.Area{Name: "دمشق"}
	require.NoError(t, db.Create(&area).Error)
	category := models.Category{Name: "سباكة"}
	require.NoError(t, db.Create(&category).Error)

	seller := models.User{
		FullName:     "Seller One",
		Username:     "seller1",
		PasswordHash: "x",
		Role:         models.RoleSeller,
		Balance:      sellerBalance,
		AreaID:       &area.ID,
	}
	require.NoError(t, db.Create(&seller).Error)

	client := models.User{
		FullName:     "Client One",
		Username:     "client1",
		PasswordHash: "x",
		Role:         models.RoleClient,
		AreaID:       &area.ID,
	}
	require.NoError(t, db.Create(&client).Error)

	service := models.HomeService{
		Title:      "إصلاح تسريبات",
		CategoryID: category.ID,
		AreaID:     area.ID,
		SellerID:   seller.ID,
	}
	require.NoError(t, db.Create(&service).Error)

	return &fixture{db: db, seller: seller, client: client, service: service}
}

func (f *fixture) addFee(t *testing.T, price float64, beneficiary string) {
	t.Helper()
	fee := models.GeneralServicesPrice{Price: price, Beneficiary: beneficiary}
	require.NoError(t, f.db.Create(&fee).Error)
}

func (f *fixture) createOrder(t *testing.T, status models.OrderStatus) *models.OrderService {
	t.Helper()
	order := models.OrderService{
		ClientID:                  f.client.ID,
		HomeServiceID:             f.service.ID,
		Status:                    status,
		ExpectedTimeByDayToFinish: 7,
	}
	if status != models.OrderStatusPending {
		now := time.Now()
		order.AnswerTime = &now
	}
	require.NoError(t, f.db.Create(&order).Error)
	return &order
}

func (f *fixture) reloadOrder(t *testing.T, id uint) *models.OrderService {
	t.Helper()
	var order models.OrderService
	require.NoError(t, f.db.First(&order, id).Error)
	return &order
}

func (f *fixture) reloadUser(t *testing.T, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, f.db.First(&user, id).Error)
	return &user
}

func (f *fixture) reloadService(t *testing.T) *models.HomeService {
	t.Helper()
	var service models.HomeService
	require.NoError(t, f.db.First(&service, f.service.ID).Error)
	return &service
}
