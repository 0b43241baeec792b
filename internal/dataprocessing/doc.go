// Package dataprocessing loads, cleans, derives and joins the exam, school
// census and municipal indicator tables.
//
// # Architecture
//
// Tables are gota DataFrames. The package is organized into:
//
//  1. Loader: reads a delimited file in a given encoding (Load, LoadReader)
//  2. Guards: run a transform only when its columns exist (Guard, Outcome)
//  3. Derivations: MEDIA_NOTAS, FAIXA_ETARIA, NIVEL/CATEGORIA_INFRAESTRUTURA,
//     CATEGORIA_IDH and TIPO_ESCOLA
//  4. Joiner: hash left join with pandas-style suffixes (LeftJoin)
//  5. Cleaner: the ingestion job built from the pieces above
//  6. Analytics: group means, counts, correlations, histograms and quartiles
//     used by the reports
//
// # Usage
//
//	df, err := dataprocessing.Load("dados/enem_2022_amostra.csv", dataprocessing.DefaultLoadOptions())
//	if err != nil {
//	    return err // always a MALFORMED_INPUT AppError
//	}
//
//	out, err := dataprocessing.DeriveMeanScore(df)
//	if out.Skipped {
//	    logger.Warn("skipped", slog.Any("missing", out.Missing))
//	}
//
// # Missing Columns
//
// A missing column is never an error. Every guarded operation returns an
// Outcome whose Skipped flag and Missing list say what was absent; the input
// table is carried through unchanged.
//
// # Binning
//
// Bins are right-closed, (e[i], e[i+1]], with the lowest edge inclusive.
// Values outside every bin are missing.
package dataprocessing
