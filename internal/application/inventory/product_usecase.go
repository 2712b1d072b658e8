package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/posventa-api/internal/application/dto"
	"github.com/jhoicas/posventa-api/internal/application/ports"
	"github.com/jhoicas/posventa-api/internal/domain"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos e historial de movimientos. El stock inicial se
// registra como movimiento RESTOCK en la misma transacción del alta, para que la
// suma del ledger iguale current_stock desde el primer día.
type ProductUseCase struct {
	txRunner     ports.TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner ports.TxRunner, productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, productRepo: productRepo, movementRepo: movementRepo}
}

// Create da de alta el producto. SKU único; stock inicial >= 0.
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" {
		return nil, &domain.ValidationError{Field: "sku", Reason: "requerido"}
	}
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "requerido"}
	}
	if in.InitialStock < 0 {
		return nil, &domain.ValidationError{Field: "initial_stock", Reason: "no puede ser negativo"}
	}
	if in.ReorderPoint < 0 || in.LowStockThreshold < 0 {
		return nil, &domain.ValidationError{Field: "reorder_point", Reason: "no puede ser negativo"}
	}
	if in.UnitPrice.LessThan(decimal.Zero) || in.CostPrice.LessThan(decimal.Zero) {
		return nil, &domain.ValidationError{Field: "unit_price", Reason: "no puede ser negativo"}
	}

	now := time.Now()
	product := &entity.Product{
		ID:                 uuid.New().String(),
		SKU:                in.SKU,
		Name:               in.Name,
		Description:        in.Description,
		CurrentStock:       in.InitialStock,
		ReorderPoint:       in.ReorderPoint,
		LowStockThreshold:  in.LowStockThreshold,
		MaxStock:           in.MaxStock,
		CostPrice:          in.CostPrice,
		UnitPrice:          in.UnitPrice,
		SupplierID:         in.SupplierID,
		AutoReorderEnabled: in.AutoReorderEnabled,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		cost := in.CostPrice
		return r.Movements.Create(ctx, &entity.Movement{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			Type:        entity.MovementRESTOCK,
			Quantity:    in.InitialStock,
			ReferenceID: product.ID,
			CostPrice:   &cost,
			ActorID:     actorID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return productToResponse(product), nil
}

// Get devuelve un producto por id.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "producto", ID: id}
	}
	return productToResponse(product), nil
}

// Update modifica los campos de catálogo. El stock no se toca por aquí.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "producto", ID: id}
	}
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "requerido"}
	}
	product.Name = in.Name
	product.Description = in.Description
	product.ReorderPoint = in.ReorderPoint
	product.LowStockThreshold = in.LowStockThreshold
	product.MaxStock = in.MaxStock
	product.CostPrice = in.CostPrice
	product.UnitPrice = in.UnitPrice
	product.SupplierID = in.SupplierID
	product.AutoReorderEnabled = in.AutoReorderEnabled
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return productToResponse(product), nil
}

// List devuelve productos paginados.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productToResponse(p))
	}
	return out, nil
}

// ListLowStock devuelve los productos en o por debajo de su umbral de stock bajo.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productToResponse(p))
	}
	return out, nil
}

// Movements historial del ledger para un producto, con rango de fechas opcional.
func (uc *ProductUseCase) Movements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	movements, err := uc.movementRepo.ListByProduct(ctx, productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			Type:        string(m.Type),
			Quantity:    m.Quantity,
			ReferenceID: m.ReferenceID,
			SupplierID:  m.SupplierID,
			CostPrice:   m.CostPrice,
			ActorID:     m.ActorID,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}

func productToResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                 p.ID,
		SKU:                p.SKU,
		Name:               p.Name,
		Description:        p.Description,
		CurrentStock:       p.CurrentStock,
		ReorderPoint:       p.ReorderPoint,
		LowStockThreshold:  p.LowStockThreshold,
		MaxStock:           p.MaxStock,
		CostPrice:          p.CostPrice,
		UnitPrice:          p.UnitPrice,
		SupplierID:         p.SupplierID,
		AutoReorderEnabled: p.AutoReorderEnabled,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
