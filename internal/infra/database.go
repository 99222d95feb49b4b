package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dsocial118/SISOC-sub004/internal/model"
)

// NewDatabase establishes a GORM connection, runs AutoMigrate over the full
// domain, then applies the idempotent SQL patches AutoMigrate cannot express
// (partial indexes and the RESTRICT FK on documento_convenio_id).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Comedor{},
		&model.TipoDocumento{},
		&model.Admision{},
		&model.DocumentoAdmision{},
		&model.InformeTecnico{},
		&model.CampoASubsanar{},
		&model.ObservacionRevision{},
		&model.InformeComplementario{},
		&model.RespuestaComplementario{},
		&model.Anexo{},
		&model.ExpedientePago{},
		&model.NotaExpediente{},
		&model.ArtefactoInforme{},
		&model.HistorialCambio{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches covers what AutoMigrate skips. Every statement is
// guarded, so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Unicidad por (admision, tipo) solo entre filas vivas: los tipos
		// predefinidos admiten un unico documento no eliminado.
		{"partial unique idx documentos_admision (admision, tipo) vivos", `
CREATE UNIQUE INDEX IF NOT EXISTS uq_documentos_admision_tipo_vivos
ON documentos_admision (admision_id, tipo_id)
WHERE deleted_at IS NULL AND tipo_id IS NOT NULL`},

		// Un unico informe vivo por (admision, variante).
		{"partial unique idx informes_tecnicos (admision, variante) vivos", `
CREATE UNIQUE INDEX IF NOT EXISTS uq_informes_admision_variante_vivos
ON informes_tecnicos (admision_id, variante)
WHERE deleted_at IS NULL`},

		// El documento de convenio queda protegido: mientras la admision
		// exista (aun como baja logica) la fila referenciada no puede
		// borrarse fisicamente.
		{"restrict fk admisiones.documento_convenio_id", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_admisiones_documento_convenio') THEN
    ALTER TABLE admisiones
      ADD CONSTRAINT fk_admisiones_documento_convenio
      FOREIGN KEY (documento_convenio_id) REFERENCES documentos_admision(id)
      ON DELETE RESTRICT;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("%s: %w", p.descr, err)
		}
	}
	return nil
}
