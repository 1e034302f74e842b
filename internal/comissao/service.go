package comissao

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/SigaRastreamento/api-site/internal/cupom"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/metricas"
	"github.com/SigaRastreamento/api-site/internal/representante"
	"github.com/SigaRastreamento/api-site/internal/solicitacao"
)

type Service struct {
	DB             *gorm.DB
	Representantes representante.Repository
	Cupons         cupom.Repository
	Solicitacoes   solicitacao.Repository
	Metricas       *metricas.Metricas
	Log            *logger.Logger
}

func NewService(db *gorm.DB, m *metricas.Metricas, logg *logger.Logger) *Service {
	return &Service{
		DB:             db,
		Representantes: representante.NewRepository(),
		Cupons:         cupom.NewRepository(),
		Solicitacoes:   solicitacao.NewRepository(),
		Metricas:       m,
		Log:            logg,
	}
}

// Gerar busca as três coleções em paralelo e monta o relatório filtrado.
func (s *Service) Gerar(ctx context.Context, filtro string) ([]Relatorio, error) {
	inicio := time.Now()

	var (
		reps   []representante.Representante
		cupons []cupom.Cupom
		sols   []solicitacao.Solicitacao
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reps, err = s.Representantes.ListarTodos(s.DB.WithContext(gctx))
		if err != nil {
			return fmt.Errorf("listando representantes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		cupons, err = s.Cupons.ListarTodos(s.DB.WithContext(gctx))
		if err != nil {
			return fmt.Errorf("listando cupons: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		sols, err = s.Solicitacoes.ListarComCupom(s.DB.WithContext(gctx))
		if err != nil {
			return fmt.Errorf("listando solicitações: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	relatorios := Filtrar(MontarRelatorio(reps, cupons, sols), filtro)
	s.Metricas.Relatorio(time.Since(inicio))
	s.Log.Debug(s.Log.WithFields(ctx, map[string]any{
		"filtro":         filtro,
		"representantes": len(relatorios),
		"solicitacoes":   len(sols),
	}), "comissao.relatorio_gerado")
	return relatorios, nil
}
