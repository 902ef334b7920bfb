package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

type AddressRepo struct {
	db *DbDao
}

func NewAddressRepo(db *DbDao) *AddressRepo {
	return &AddressRepo{db: db}
}

// Create - 創建地址
// 設為預設地址時，同使用者同類型的其他地址取消預設
func (s *AddressRepo) CreateAddress(ctx context.Context, address *model.Address) error {
	if address.Default {
		err := s.db.WithContext(ctx).Model(&model.Address{}).
			Where("user_id = ? AND address_type = ?", address.UserID, address.AddressType).
			Update("default", false).Error
		if err != nil {
			return err
		}
	}
	return s.db.WithContext(ctx).Create(address).Error
}

// Read - 查詢使用者地址
func (s *AddressRepo) GetAddressesByUserID(ctx context.Context, userID uint) ([]model.Address, error) {
	var addresses []model.Address
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&addresses).Error
	return addresses, err
}

// 根據條件分頁查詢地址
func (s *AddressRepo) GetAddressesPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Address, int64, error) {
	var addresses []model.Address
	var total int64

	offset := (page - 1) * pageSize
	query := s.db.WithContext(ctx).Model(&model.Address{})

	for key, value := range condition {
		query = query.Where(key+" = ?", value)
	}

	query.Count(&total)

	err := query.Offset(offset).Limit(pageSize).Find(&addresses).Error

	return addresses, total, err
}
